package handler

import (
	"net/http"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/domain"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/service"

	"github.com/gin-gonic/gin"
)

type ParkingSessionHandler struct {
	parkingService *service.ParkingService
}

func NewParkingSessionHandler(ps *service.ParkingService) *ParkingSessionHandler {
	return &ParkingSessionHandler{parkingService: ps}
}

// GET /api/sessions/active
func (h *ParkingSessionHandler) GetActiveSessions(c *gin.Context) {
	sessions, err := h.parkingService.GetActiveSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []domain.ParkingSession{}
	}
	c.JSON(http.StatusOK, sessions)
}
