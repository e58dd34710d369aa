package main

import (
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"lms/config"
	controllers "lms/controllers/course"
	"lms/database"
	"lms/logger"
	"lms/middleware"
	"lms/routers/courseRoutes"
	"lms/routers/healthRoutes"
	"lms/services/notify"
	"lms/services/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		stdlog.Fatalf("failed to initialise logger: %v", err)
	}
	defer log.Sync()

	if err := database.ConnectDb(cfg, log); err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	db := database.Database.Db

	engine := progress.NewEngine(db, progress.Options{
		IncrementSeconds:       cfg.ProgressIncrementSeconds,
		DefaultDurationSeconds: cfg.DefaultDurationMinutes * 60,
		DurationSource:         cfg.DurationSource,
	}, log)

	assembler := progress.NewAssembler(db)
	assembler.DefaultDurationSeconds = cfg.DefaultDurationMinutes * 60

	notifier, err := notify.New(cfg, db, log)
	if err != nil {
		log.Fatal("notifier setup failed", "error", err)
	}
	engine.OnCourseCompleted(notify.NewDispatcher(notifier, db, log).Handle)

	controllers.Init(engine, assembler, log)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))
	app.Use(middleware.RequestLogger(log))

	healthRoutes.SetupHealthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("Server is running", "port", cfg.Port, "duration_source", cfg.DurationSource, "notifier", cfg.Notifier)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
