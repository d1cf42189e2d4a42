package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"hairnerds_backend/internals/configs"
	database "hairnerds_backend/internals/databases"
	paymentService "hairnerds_backend/internals/features/finance/payments/service"
	resultScheduler "hairnerds_backend/internals/features/quizzes/results/scheduler"
	resultService "hairnerds_backend/internals/features/quizzes/results/service"
	authScheduler "hairnerds_backend/internals/features/users/auth/scheduler"
	middlewares "hairnerds_backend/internals/middlewares"
	routes "hairnerds_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               25 * 1024 * 1024, // upload attachment dokumen
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if autoMigrate, _ := strconv.ParseBool(configs.GetEnv("DB_AUTO_MIGRATE", "false")); autoMigrate {
		database.AutoMigrate()
	}

	// ✅ MIDTRANS
	useProduction, _ := strconv.ParseBool(configs.GetEnv("MIDTRANS_PRODUCTION", "false"))
	paymentService.InitMidtrans(configs.MidtransServerKey, useProduction)

	// ⏱ scheduler setelah DB siap
	authScheduler.StartTokenCleanupScheduler(database.DB)

	resultSvc := resultService.NewQuizResultService(database.DB)
	autoSubmit := resultScheduler.NewAutoSubmitScheduler(resultSvc)
	resultSvc.Delay = autoSubmit
	resultScheduler.StartExpiredSweep(database.DB, resultSvc)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, resultSvc)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
