package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comfort-asbl/comfort-site-tools/comfort"
	comforthttp "github.com/comfort-asbl/comfort-site-tools/comfort/http"
	"github.com/comfort-asbl/comfort-site-tools/config"
)

// Environment provides an abstraction around the execution environment
type Environment struct {
	Stderr io.Writer
	Stdout io.Writer
	Stdin  io.Reader
}

type SyncCmd struct{}

// Run pulls every collection from the content API into the shared
// store and persists the result as the last-known-good snapshot.
func (cmd *SyncCmd) Run(env *Environment, store *comfort.Store, snapshots comfort.SnapshotStore, logger *zap.Logger) error {
	ctx := context.Background()

	store.Init(ctx)

	for _, kind := range comfort.Kinds() {
		fmt.Fprintf(env.Stdout, "%-14s %s\n", kind, store.SourceOf(kind))
	}

	if err := comfort.SnapshotStoreContents(ctx, store, snapshots); err != nil {
		return err
	}

	logger.Info("sync complete")
	return nil
}

type ServeCmd struct{}

// Run loads the collections (restoring snapshots for any kind the API
// could not provide) and serves them over HTTP until interrupted.
func (cmd *ServeCmd) Run(env *Environment, cfg *config.Config, store *comfort.Store, snapshots comfort.SnapshotStore, logger *zap.Logger) error {
	ctx := context.Background()

	store.Init(ctx)

	// Prefer stale real data over compiled-in samples.
	for _, kind := range comfort.Kinds() {
		if store.SourceOf(kind) != comfort.SourceFallback {
			continue
		}
		payload, err := snapshots.LoadCollection(ctx, kind)
		if err != nil {
			if !errors.Is(err, comfort.ErrNoSnapshot) {
				logger.Warn("snapshot unavailable", zap.String("kind", string(kind)), zap.Error(err))
			}
			continue
		}
		if err := store.Restore(kind, payload); err != nil {
			logger.Warn("snapshot restore failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}

	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		for _, kind := range comfort.Kinds() {
			api.GET("/"+string(kind), comforthttp.CollectionHandler(store, kind))
			api.POST("/"+string(kind)+"/refresh", comforthttp.RefreshHandler(store, kind))
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()
	logger.Info("server running", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited gracefully")
	return nil
}

type CLI struct {
	Config string `help:"path to the configuration file." default:"comfort.yaml"`

	Sync  SyncCmd  `cmd:"" help:"Pulls every collection from the content API and snapshots it locally."`
	Serve ServeCmd `cmd:"" help:"Serves the site collections (with fallback and snapshot degradation) over HTTP."`
}

func Run(env Environment) int {
	app := CLI{}

	cntx := kong.Parse(&app,
		kong.Description("COMFORT Asbl site data tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := config.Load(app.Config)
	cntx.FatalIfErrorf(err)

	logger, err := zap.NewProduction()
	cntx.FatalIfErrorf(err)
	defer logger.Sync()

	client := comforthttp.NewSiteClient(comforthttp.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.APITimeout(),
		DegradedLogin:  cfg.DegradedAuth.Login,
		DegradedSecret: cfg.DegradedAuth.Password,
		Logger:         logger,
	})

	store := comfort.NewStore(client)

	snapshots, err := comfort.NewSnapshotStore(cfg.DatabaseURL)
	cntx.FatalIfErrorf(err)
	defer snapshots.Close()

	cntx.BindTo(client, (*comforthttp.Client)(nil))
	cntx.BindTo(snapshots, (*comfort.SnapshotStore)(nil))
	cntx.Bind(cfg)
	cntx.Bind(store)
	cntx.Bind(logger)

	err = cntx.Run(&env)
	cntx.FatalIfErrorf(err)

	return 0
}
