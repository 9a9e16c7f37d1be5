package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/config"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/database"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/loader"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/logger"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/middleware/auth"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/middleware/rayid"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/storage"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/feature/costmap"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/LTplus-AG/NHMzh-plugin-cost-sub000/docs/swagger"
)

// @title NHMzh Cost Plugin API
// @version 1.0
// @description API for mapping cost estimates onto BIM model elements.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the cost plugin server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// Without a database the costmap feature falls back to the element
		// export in object storage.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			if cfg.Server.Project != "" {
				logg = logg.With(zap.String("project", cfg.Server.Project))
			}
			logg.Info("Connected to model element database")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(costmap.NewFeature(store, cfg.Storage.Bucket, logg, db, cfg.Mapping))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.ListenAddr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
