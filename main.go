package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/b-sukumar/salondost-dashboard/config"
	"github.com/b-sukumar/salondost-dashboard/ledger"
	"github.com/b-sukumar/salondost-dashboard/logger"
	"github.com/b-sukumar/salondost-dashboard/middleware"
	"github.com/b-sukumar/salondost-dashboard/models"
	"github.com/b-sukumar/salondost-dashboard/realtime"
	"github.com/b-sukumar/salondost-dashboard/routes"
	"github.com/b-sukumar/salondost-dashboard/store"
)

func main() {
	// .env is optional; the system environment wins otherwise
	_ = godotenv.Load()

	cfg := config.NewConfig()
	log := logger.New(cfg.Environment)
	defer log.Sync()

	loc, err := time.LoadLocation(cfg.SalonTimezone)
	if err != nil {
		log.Warn("invalid SALON_TZ, falling back to UTC", zap.String("tz", cfg.SalonTimezone))
		loc = time.UTC
	}

	// Initialize Supabase client and the data layer
	supabaseClient := config.NewSupabaseClient(cfg)
	st := store.New(supabaseClient)

	// Load the working set once, then keep it live off realtime changes
	led := ledger.New(st, log)
	led.Refresh("startup")

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	rt := realtime.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, log)
	go rt.Subscribe(rootCtx, "bookings", func(ev realtime.Event) {
		raw := ev.Record
		if ev.Type == "DELETE" {
			raw = ev.Old
		}
		var booking models.Booking
		if len(raw) > 0 && json.Unmarshal(raw, &booking) == nil && led.Apply(ev.Type, booking) {
			return
		}
		// Event without a usable row: fall back to a full reload
		led.Refresh("realtime_fallback")
	})
	defer rt.Close()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.MetricsMiddleware())
	router.Use(config.CORSMiddleware(cfg))

	routes.SetupRoutes(router, st, led, cfg, loc)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   20 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
