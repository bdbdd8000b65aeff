package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/lysyi3m/atomsmith/app/api"
	"github.com/lysyi3m/atomsmith/app/cfg"
	"github.com/lysyi3m/atomsmith/app/config"
	"github.com/lysyi3m/atomsmith/app/database"
	"github.com/lysyi3m/atomsmith/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if err := run(appCfg); err != nil {
		slog.Error("Atomsmith failed", "error", err)
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg) error {
	slog.Info("Starting Atomsmith", "version", appCfg.Version, "config", appCfg.ConfigFile)

	site, err := config.NewLoader(appCfg.ConfigFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load site configuration: %w", err)
	}
	siteName := strings.TrimSuffix(filepath.Base(appCfg.ConfigFile), filepath.Ext(appCfg.ConfigFile))

	p, err := tasks.NewPipeline(site)
	if err != nil {
		return fmt.Errorf("invalid site configuration: %w", err)
	}
	slog.Info("Site configuration loaded",
		"site", siteName,
		"source", site.Source,
		"destination", site.Destination,
		"collections", len(site.Collections),
		"feeds", len(site.Feeds))

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return err
	}
	slog.Debug("Database ready", "path", appCfg.DBPath, "version", version, "dirty", dirty)

	artifactRepo := database.NewArtifactRepository(db)
	newTask := func() tasks.TaskInterface {
		return tasks.NewBuildSiteTask(siteName, site, p, artifactRepo)
	}

	initial := newTask()
	initial.Start()
	if err := initial.Execute(context.Background()); err != nil {
		return err
	}

	if !appCfg.Serve {
		return nil
	}

	return serve(appCfg, siteName, artifactRepo, newTask)
}

func serve(appCfg *cfg.Cfg, siteName string, artifactRepo database.ArtifactRepository, newTask tasks.TaskFactory) error {
	scheduler := tasks.NewScheduler(newTask, time.Duration(appCfg.RebuildInterval)*time.Second, appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(siteName, artifactRepo, scheduler, newTask)
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, appCfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "rebuild_interval", appCfg.RebuildInterval)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case serveErr = <-serverErrChan:
	}

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	return serveErr
}
