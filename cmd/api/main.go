package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"drivingschool/internal/config"
	"drivingschool/internal/database"
	"drivingschool/internal/middleware"
	"drivingschool/internal/modules/auth"
	"drivingschool/internal/modules/catalog"
	"drivingschool/internal/modules/dashboard"
	"drivingschool/internal/modules/enrollment"
	"drivingschool/internal/modules/message"
	"drivingschool/internal/modules/notification"
	"drivingschool/internal/modules/schedule"
	jwtsvc "drivingschool/internal/pkg/jwt"
	"drivingschool/internal/repository"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)

	notifService := notification.NewService(notificationRepo)
	notifHandler := notification.NewHandler(notifService)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	enrollmentService := enrollment.NewService(enrollmentRepo, userRepo, catalogRepo, notifService)
	enrollmentHandler := enrollment.NewHandler(enrollmentService, cfg.UploadDir)

	scheduleService := schedule.NewService(bookingRepo, userRepo, catalogRepo, notifService)
	scheduleHandler := schedule.NewHandler(scheduleService)

	hub := message.NewHub()
	defer hub.Close()

	messageService := message.NewService(messageRepo, userRepo, notifService, hub)
	messageHandler := message.NewHandler(messageService)
	wsHandler := message.NewWSHandler(hub, j)

	dashboardService := dashboard.NewService(userRepo, bookingRepo, enrollmentRepo, messageRepo, notificationRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static("/static/enrollment", cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		enrollmentHandler.RegisterRoutes(v1)

		v1.GET("/ws/messages", wsHandler.HandleWebSocket)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			scheduleHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
			messageHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
