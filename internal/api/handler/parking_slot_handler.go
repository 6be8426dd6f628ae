package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/service"

	"github.com/gin-gonic/gin"
)

type ParkingSlotHandler struct {
	parkingService   *service.ParkingService
	dashboardService *service.DashboardService
}

func NewParkingSlotHandler(ps *service.ParkingService, ds *service.DashboardService) *ParkingSlotHandler {
	return &ParkingSlotHandler{parkingService: ps, dashboardService: ds}
}

// POST /api/slots
func (h *ParkingSlotHandler) CreateSlot(c *gin.Context) {
	var dto domain.ParkingSlotDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.parkingService.CreateParkingSlot(c.Request.Context(), dto)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		if errors.Is(err, repository.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// POST /api/slots/list
func (h *ParkingSlotHandler) GetSlots(c *gin.Context) {
	var dto domain.SlotFilterDTO
	// Body rỗng coi như không lọc
	_ = c.ShouldBindJSON(&dto)

	slots, err := h.parkingService.GetSlots(c.Request.Context(), dto.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if slots == nil {
		slots = []domain.ParkingSlot{}
	}
	c.JSON(http.StatusOK, slots)
}

// POST /api/slots/dashboard-stats
func (h *ParkingSlotHandler) GetDashboardStats(c *gin.Context) {
	var dto domain.SlotFilterDTO
	_ = c.ShouldBindJSON(&dto)

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), dto.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// POST /api/slots/:id/maintenance
func (h *ParkingSlotHandler) SetSlotMaintenance(c *gin.Context) {
	h.overrideSlotStatus(c, h.parkingService.SetSlotMaintenance, "Slot set to maintenance.")
}

// POST /api/slots/:id/available
func (h *ParkingSlotHandler) SetSlotAvailable(c *gin.Context) {
	h.overrideSlotStatus(c, h.parkingService.SetSlotAvailable, "Slot marked available.")
}

func (h *ParkingSlotHandler) overrideSlotStatus(
	c *gin.Context,
	update func(ctx context.Context, slotID int) (*domain.ParkingSlot, error),
	message string,
) {
	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID."})
		return
	}

	slot, err := update(c.Request.Context(), slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "slot": slot})
}
