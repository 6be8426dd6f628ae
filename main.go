package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dhairyatiwari7/Mall-Parking/internal/api"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/api/handler"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/config"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/repository/postgresql"
	"github.com/Dhairyatiwari7/Mall-Parking/internal/service"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Cấu hình đã được tải.")

	// 2. Setup Database Connection
	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("Không thể kết nối database: %v", err)
	}
	defer db.Close()
	log.Println("Đã kết nối database thành công!")

	// 3. Initialize Repositories
	vehicleRepo := postgresql.NewPgVehicleRepository(db)
	slotRepo := postgresql.NewPgParkingSlotRepository(db)
	sessionRepo := postgresql.NewPgParkingSessionRepository(db)
	billingRepo := postgresql.NewPgBillingRepository(db)

	// init websocket manager
	webSocketManager := handler.NewWebSocketManager()
	go webSocketManager.Start()
	log.Println("WebSocket Manager đã được khởi động.")

	// 4. Initialize Services
	billingService := service.NewBillingService(billingRepo, cfg.MallClosingHour)
	parkingService := service.NewParkingService(vehicleRepo, slotRepo, sessionRepo,
		billingService, webSocketManager, cfg.AllowMaintenanceOverride)
	dashboardService := service.NewDashboardService(slotRepo, vehicleRepo, sessionRepo)

	// 5. Chạy background job quét xe daypass quá giờ đóng cửa
	watcherCtx, cancelWatcher := context.WithCancel(context.Background())
	overdueWatcher := service.NewOverdueWatcher(sessionRepo, webSocketManager,
		cfg.MallClosingHour, cfg.OverdueCheckInterval)
	go overdueWatcher.Start(watcherCtx)

	// 6. Setup HTTP Router
	router := api.SetupRouter(parkingService, billingService, dashboardService, webSocketManager)

	// 7. Start HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server đang chạy trên port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Lỗi ListenAndServe(): %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Đang tắt server...")

	cancelWatcher()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server buộc phải tắt: %v", err)
	}

	log.Println("Server đã tắt.")
}
