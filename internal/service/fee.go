package service

import (
	"math"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
)

// Biểu phí theo bậc cho vé hourly: thời gian đỗ làm tròn LÊN theo giờ,
// mỗi bậc một mức phí cố định. Quá 6 giờ tính phí trần theo ngày.
const (
	feeUpTo1Hour  = 50.0
	feeUpTo3Hours = 100.0
	feeUpTo6Hours = 150.0
	feeDailyCap   = 200.0

	// Vé daypass giá cố định, không phụ thuộc thời gian đỗ
	daypassFlatFee = 150.0
)

// CalculateFee tính phí cho một phiên đã có thời gian ra.
func CalculateFee(billingType domain.BillingType, entryTime, exitTime time.Time) float64 {
	if billingType == domain.BillingDaypass {
		return daypassFlatFee
	}

	hours := int(math.Ceil(exitTime.Sub(entryTime).Hours()))
	switch {
	case hours <= 1:
		return feeUpTo1Hour
	case hours <= 3:
		return feeUpTo3Hours
	case hours <= 6:
		return feeUpTo6Hours
	default:
		return feeDailyCap
	}
}

// DurationHours tính thời gian đỗ theo giờ, làm tròn 2 chữ số thập phân.
func DurationHours(entryTime, exitTime time.Time) float64 {
	return math.Round(exitTime.Sub(entryTime).Hours()*100) / 100
}

// MallClosingTime trả về thời điểm đóng cửa của ngày xe vào.
func MallClosingTime(entryTime time.Time, closingHour int) time.Time {
	return time.Date(entryTime.Year(), entryTime.Month(), entryTime.Day(),
		closingHour, 0, 0, 0, entryTime.Location())
}

// AssessLate xác định xe daypass có ra trễ sau giờ đóng cửa không và trễ bao
// nhiêu giờ (làm tròn lên). Vé hourly không bao giờ bị tính trễ vì đã trả phí
// theo thời gian thực đỗ. Đây là nơi duy nhất đánh giá về trễ; mọi chỗ khác
// (response xe ra, bản ghi billing, cảnh báo realtime) dùng lại kết quả này.
func AssessLate(billingType domain.BillingType, entryTime, exitTime time.Time, closingHour int) (bool, int) {
	if billingType != domain.BillingDaypass {
		return false, 0
	}
	closing := MallClosingTime(entryTime, closingHour)
	if !exitTime.After(closing) {
		return false, 0
	}
	lateHours := int(math.Ceil(exitTime.Sub(closing).Hours()))
	return true, lateHours
}
