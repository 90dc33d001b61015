package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"merch-manager/core/cache"
	"merch-manager/core/loader"
	"merch-manager/core/logger"
	"merch-manager/core/middleware/rayid"
	"merch-manager/core/storage"
	"merch-manager/feature/dashboard"
	"merch-manager/feature/integrity"
	"merch-manager/feature/orders"
	"merch-manager/feature/products"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "merch-manager/docs/swagger"
)

// @title Merch Manager API
// @version 1.0
// @description Admin API for the merchandise catalog, orders and inventory needs.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the merch manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// 1. Configuration and logger
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		cfg, logg := rt.cfg, rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Database
		db, productRepo, orderRepo, err := rt.repositories()
		if err != nil {
			return err
		}
		if err := migrate(db); err != nil {
			return err
		}

		// 3. Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 4. Services
		catalogCache := rt.catalogCache(productRepo)

		productSvc := products.NewService(productRepo, store, cfg.Storage, rt.registry, logg)
		productSvc.OnChange(catalogCache.Invalidate)
		orderSvc := orders.NewService(orderRepo, catalogCache, logg)
		dashboardSvc := dashboard.NewService(orderRepo, catalogCache, cfg.Catalog.LowStockThreshold, logg)
		integritySvc := integrity.NewService(store, cfg.Storage, rt.registry, catalogCache, logg)

		mgr := loader.NewManager(logg)
		mgr.Register(products.NewFeature(productSvc))
		mgr.Register(orders.NewFeature(orderSvc))
		mgr.Register(dashboard.NewFeature(dashboardSvc))
		mgr.Register(integrity.NewFeature(integritySvc))

		// 5. Fiber app
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// RayID must be first to trace everything.
		app.Use(rayid.New())

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

		app.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.Server.Origins(),
			ExposeHeaders: rayid.Header,
		}))

		if cfg.Server.RateLimited() {
			limit := limiter.Config{
				Max:        cfg.Server.RateLimit,
				Expiration: cfg.Server.RateWindow(),
			}
			if cfg.Cache.RedisEnabled() {
				rdb, err := cache.Connect(ctx, cfg.Cache)
				if err != nil {
					logg.Warn("Redis unavailable, using in-memory rate limiter", zap.Error(err))
				} else {
					defer rdb.Close()
					limit.Storage = cache.NewStorage(rdb, cfg.Cache.KeyPrefix)
					logg.Info("Rate limiter backed by redis")
				}
			}
			app.Use(limiter.New(limit))
		}

		app.Get("/swagger/*", swagger.HandlerDefault)

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
