package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"docman/cache"
	"docman/config"
	"docman/routes"
	"docman/services"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tokenCache, closeCache, err := newTokenCache(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeCache()

		gin.SetMode(cfg.GinMode)
		app := routes.Setup(cfg, db, tokenCache, log)

		scheduler, err := schedulePurge(cfg.BlacklistPurgeSchedule, app.Blacklist, log)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           app.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server starting", zap.String("port", cfg.Port))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

// newTokenCache prefers Redis when REDIS_URL is set and falls back to an
// in-process LRU.
func newTokenCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (cache.TokenCache, func(), error) {
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisTokenCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("token cache: redis")
		return redisCache, func() { redisCache.Close() }, nil
	}

	lruCache, err := cache.NewLRUTokenCache(cfg.BlacklistCacheSize)
	if err != nil {
		return nil, nil, err
	}
	log.Info("token cache: in-process", zap.Int("size", cfg.BlacklistCacheSize))
	return lruCache, func() {}, nil
}

// schedulePurge registers the blacklist cleanup on spec. The caller starts
// and stops the returned scheduler.
func schedulePurge(spec string, blacklist services.BlacklistService, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := blacklist.PurgeExpired(ctx); err != nil {
			log.Error("blacklist purge failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	log.Info("blacklist purge scheduled", zap.String("schedule", spec))
	return c, nil
}
