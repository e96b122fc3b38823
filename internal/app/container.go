package app

import (
	"fmt"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/venue-booking-engine/internal/booking"
	bookingHttp "github.com/campuskit/venue-booking-engine/internal/booking/http"
	"github.com/campuskit/venue-booking-engine/internal/notify"
	"github.com/campuskit/venue-booking-engine/internal/pkg/identity"
	"github.com/campuskit/venue-booking-engine/internal/resource"
	resourceHttp "github.com/campuskit/venue-booking-engine/internal/resource/http"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Publisher    notify.Publisher
	Logger       *slog.Logger

	DayOpen          string
	DayClose         string
	WindowTimezone   string
	MaxSuggestions   int
	AdmissionRetries int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	window, err := booking.NewWindow(cfg.DayOpen, cfg.DayClose, cfg.WindowTimezone)
	if err != nil {
		return nil, fmt.Errorf("configure operating window: %w", err)
	}

	idgen := identity.NewUUIDGenerator()

	// Resource Module
	resRepo := resource.NewPgxRepository(cfg.DBPool)
	resService := resource.NewService(resRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, resService, idgen, booking.Options{
		Window:           window,
		MaxSuggestions:   cfg.MaxSuggestions,
		AdmissionRetries: cfg.AdmissionRetries,
	})

	router := newRouter(cfg, resService, bookingService)

	return &Container{
		Router:         router,
		BookingService: bookingService,
	}, nil
}

// newRouter assembles middleware (CORS, Logger, Recovery) and registers the
// module routes under /v1.
func newRouter(cfg Config, resService resource.Service, bookingService booking.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	resourceHandler := resourceHttp.NewHandler(resService)
	bookingHandler := bookingHttp.NewHandler(bookingService, cfg.Publisher, cfg.Logger)

	v1 := r.Group("/v1")
	{
		resourceHttp.RegisterRoutes(v1, resourceHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler)
	}

	return r
}
