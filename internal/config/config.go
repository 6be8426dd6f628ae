package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Giờ đóng cửa của trung tâm thương mại (0-23). Xe daypass ra sau giờ
	// này (tính theo ngày vào) bị đánh dấu về trễ.
	MallClosingHour int

	// Cho phép chọn chỗ đang Maintenance làm preferred slot khi xe vào.
	// Chính sách này không thống nhất giữa các phiên bản nghiệp vụ nên để cấu hình.
	AllowMaintenanceOverride bool

	// Chu kỳ quét các phiên daypass quá giờ đóng cửa
	OverdueCheckInterval time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Cảnh báo: Không thể tải file .env: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	closingHour, _ := strconv.Atoi(getEnv("MALL_CLOSING_HOUR", "22"))
	overdueMinutes, _ := strconv.Atoi(getEnv("OVERDUE_CHECK_INTERVAL_MINUTES", "1"))
	allowOverride, _ := strconv.ParseBool(getEnv("ALLOW_MAINTENANCE_OVERRIDE", "false"))

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "youruser"),         // << THAY THẾ
		DBPassword: getEnv("DB_PASSWORD", "yourpassword"), // << THAY THẾ
		DBName:     getEnv("DB_NAME", "mall_parking_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		MallClosingHour:          closingHour,
		AllowMaintenanceOverride: allowOverride,
		OverdueCheckInterval:     time.Duration(overdueMinutes) * time.Minute,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Biến môi trường '%s' không được đặt, sử dụng giá trị mặc định: '%s'", key, fallback)
	return fallback
}
