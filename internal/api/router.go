package api

import (
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/api/handler"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/api/middleware"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

func SetupRouter(
	ps *service.ParkingService,
	bs *service.BillingService,
	ds *service.DashboardService,
	wsManager *handler.WebSocketManager,
) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// WebSocket endpoint cho dashboard realtime
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	// Cache ngắn cho các GET endpoint mà dashboard polling liên tục
	readCache := cache.New(5*time.Second, 30*time.Second)

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.RateLimiter(rate.Limit(50), 100))
	{
		vehicleH := handler.NewVehicleHandler(ps)
		vehicleRoutes := apiRoutes.Group("/vehicles")
		{
			vehicleRoutes.POST("/entry", vehicleH.VehicleEntry)
			vehicleRoutes.POST("/exit", vehicleH.VehicleExit)
			vehicleRoutes.POST("/search", vehicleH.SearchVehicle)
		}

		sessionH := handler.NewParkingSessionHandler(ps)
		sessionRoutes := apiRoutes.Group("/sessions")
		{
			sessionRoutes.GET("/active", middleware.Cache(readCache, 5*time.Second), sessionH.GetActiveSessions)
		}

		slotH := handler.NewParkingSlotHandler(ps, ds)
		slotRoutes := apiRoutes.Group("/slots")
		{
			slotRoutes.POST("", slotH.CreateSlot)
			slotRoutes.POST("/list", slotH.GetSlots)
			slotRoutes.POST("/dashboard-stats", slotH.GetDashboardStats)
			slotRoutes.POST("/:id/maintenance", slotH.SetSlotMaintenance)
			slotRoutes.POST("/:id/available", slotH.SetSlotAvailable)
		}

		billingH := handler.NewBillingHandler(bs)
		billingRoutes := apiRoutes.Group("/billing")
		{
			billingRoutes.POST("/records", billingH.GetBillingRecords)
			billingRoutes.POST("/revenue", billingH.GetTotalRevenue)
			billingRoutes.GET("/late", middleware.Cache(readCache, 5*time.Second), billingH.GetLateVehicles)
		}
	}
	return r
}
