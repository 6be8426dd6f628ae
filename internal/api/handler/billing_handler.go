package handler

import (
	"net/http"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/service"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billingService *service.BillingService
}

func NewBillingHandler(bs *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: bs}
}

// POST /api/billing/records
func (h *BillingHandler) GetBillingRecords(c *gin.Context) {
	var dto domain.BillingListDTO
	// Body rỗng dùng page/limit mặc định
	_ = c.ShouldBindJSON(&dto)

	records, total, err := h.billingService.ListRecords(c.Request.Context(), dto.Page, dto.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"total":   total,
	})
}

// POST /api/billing/revenue
func (h *BillingHandler) GetTotalRevenue(c *gin.Context) {
	total, err := h.billingService.TotalRevenue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"totalRevenue": total,
	})
}

// GET /api/billing/late
func (h *BillingHandler) GetLateVehicles(c *gin.Context) {
	records, err := h.billingService.ListLateVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}
