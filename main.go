// boatd/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/christianErichsen/Baatkompany/config"
	"github.com/christianErichsen/Baatkompany/database"
	"github.com/christianErichsen/Baatkompany/handlers"
	"github.com/christianErichsen/Baatkompany/mailer"
	"github.com/christianErichsen/Baatkompany/models"
	"github.com/christianErichsen/Baatkompany/utils"

	"github.com/joho/godotenv"
)

type Application struct {
	db         *database.DatabaseService
	logger     *slog.Logger
	notifier   models.Notifier
	adminToken string
	upload     models.UploadWidget
}

// Methods to satisfy the handlers.App interface
func (a *Application) DB() *database.DatabaseService     { return a.db }
func (a *Application) Logger() *slog.Logger              { return a.logger }
func (a *Application) Notifier() models.Notifier         { return a.notifier }
func (a *Application) AdminToken() string                { return a.adminToken }
func (a *Application) UploadWidget() models.UploadWidget { return a.upload }

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env file")
	}

	// --- External Configuration ---
	port := utils.GetEnv("PORT", config.DefaultPort)
	adminToken := utils.GetEnv("ADMIN_TOKEN", config.DefaultAdminToken)
	if adminToken == config.DefaultAdminToken {
		logger.Warn("ADMIN_TOKEN is unset, using the placeholder value. Set a real secret before going live.")
	}
	dbPath := utils.GetEnv("BOATD_DB_PATH", config.DefaultDBPath)

	dbService, err := database.InitDB(dbPath, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbService.DB.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err := handlers.LoadTemplates(); err != nil {
		logger.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// --- Notifier Init ---
	var notifier models.Notifier
	mailTo := utils.GetEnv("MAIL_TO", "")
	if m := mailer.New(
		utils.GetEnv("SMTP_ADDR", ""),
		utils.GetEnv("SMTP_USERNAME", ""),
		utils.GetEnv("SMTP_PASSWORD", ""),
		utils.GetEnv("MAIL_FROM", ""),
		mailTo,
	); m != nil {
		notifier = m
		logger.Info("Mail notifications enabled", "to", mailTo)
	} else {
		logger.Info("Mail notifications disabled (SMTP_ADDR or MAIL_TO not set)")
	}

	upload := models.UploadWidget{
		CloudName:    utils.GetEnv("CLOUDINARY_CLOUD_NAME", ""),
		UploadPreset: utils.GetEnv("CLOUDINARY_UPLOAD_PRESET", ""),
	}
	if !upload.Enabled() {
		logger.Info("Image upload widget disabled (Cloudinary identifiers not set)")
	}

	app := &Application{
		db:         dbService,
		logger:     logger,
		notifier:   notifier,
		adminToken: adminToken,
		upload:     upload,
	}

	mux := handlers.SetupRouter(app)

	// --- Graceful Shutdown ---
	server := &http.Server{Addr: ":" + port, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("boatd server started successfully",
		"version", config.AppVersion,
		"address", "http://localhost:"+port,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("Server exiting")
}
