package server

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/config"
	"github.com/jmcallo24/eventms/internal/handlers"
	"github.com/jmcallo24/eventms/internal/middleware"
	"github.com/jmcallo24/eventms/internal/scheduler"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	sched, err := scheduler.New(db, cfg.RefreshInterval)
	if err != nil {
		return fmt.Errorf("failed to set up scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	setupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
		public.GET("/calendar", handlers.ListCalendar)
		public.GET("/calendar/feed.ics", handlers.CalendarFeed)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/catalog", handlers.GetCatalog)
		protected.POST("/catalog/:id/registration", handlers.ToggleRegistration)
		protected.POST("/catalog/:id/favorite", handlers.ToggleFavorite)
		protected.GET("/events/:id/participants", handlers.ListParticipants)
		protected.GET("/events/:id/registration/qr", handlers.GetRegistrationQR)
		protected.POST("/registrations/check-in", middleware.RequireRole("organizer", "admin"), handlers.CheckInParticipant)

		protected.GET("/profile", handlers.GetProfile)

		events := protected.Group("/events")
		events.Use(middleware.RequireRole("organizer", "admin"))
		{
			events.POST("", handlers.CreateEvent)
			events.PUT("/:id", handlers.UpdateEvent)
			events.DELETE("/:id", handlers.DeleteEvent)
		}

		requests := protected.Group("/requests")
		{
			requests.POST("", handlers.CreateEventRequest)
			requests.GET("/mine", handlers.ListMyEventRequests)
			requests.PUT("/:id/status", middleware.RequireRole("admin"), handlers.ReviewEventRequest)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.PUT("/:id/read", handlers.MarkNotificationRead)
			notifications.PUT("/read-all", handlers.MarkAllNotificationsRead)
		}

		reports := protected.Group("/reports")
		{
			reports.POST("", handlers.CreateReport)
			reports.GET("", handlers.ListReports)
			reports.POST("/:id/messages", handlers.AddReportMessage)
			reports.PUT("/:id/status", middleware.RequireRole("admin"), handlers.UpdateReportStatus)
		}

		programFlows := protected.Group("/flows")
		{
			programFlows.POST("", handlers.CreateProgramFlow)
			programFlows.PUT("/:id/submit", handlers.SubmitProgramFlow)
			programFlows.PUT("/:id/approve", middleware.RequireRole("admin"), handlers.ApproveProgramFlow)
			programFlows.PUT("/:id/reject", middleware.RequireRole("admin"), handlers.RejectProgramFlow)
		}
		protected.GET("/events/:id/flows", handlers.ListProgramFlows)

		protected.POST("/calendar", middleware.RequireRole("admin"), handlers.CreateCalendarEntry)
	}
}
