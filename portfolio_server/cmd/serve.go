package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"portfolio-server/pkg/config"
	"portfolio-server/pkg/db/redis"
	"portfolio-server/pkg/health"
	"portfolio-server/pkg/log"
	"portfolio-server/portfolio_server/cache"
	"portfolio-server/portfolio_server/music"
	"portfolio-server/portfolio_server/server"
	"portfolio-server/portfolio_server/settings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	// config
	config.InitConfig(cfgFile)
	cnf := config.GetConfig()

	// logger
	logger := newLogger(cnf)
	config.OnChange(func(c *config.Config) {
		logger.SetLevel(c.Log.Level)
		log.SetLevel(c.Log.Level)
		logger.Info("config reloaded")
	})
	if cnf.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// settings
	settingData := openSettings(ctx, cnf, logger)
	resolver, err := settings.NewResolverFromNames(logger, cnf.Settings.Sources, settingData)
	if err != nil {
		return err
	}

	// cache
	var pool redis.RedisPool
	if cnf.Cache.Backend == cache.BackendRedis {
		redis.InitRedisPool(cnf)
		pool = redis.GetPool()
	}
	cacheFactory, err := cache.NewCacheFactory(cnf, pool)
	if err != nil {
		return err
	}

	// music
	client := music.NewClient(cnf.Music.Endpoint, music.NewHTTPClient(cnf.Music.UserAgent, cnf.Music.Timeout, nil))
	fetcher := music.NewFetcher(logger, client, resolver, cacheFactory, cnf.Music.TTL)
	musicService := music.NewService(logger, fetcher, cacheFactory, func() music.Limits {
		c := config.GetConfig()
		return music.Limits{NumArtists: c.Music.NumArtists, NumSongs: c.Music.NumSongs}
	})

	var store server.SettingsStore
	if settingData != nil {
		store = settingData
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cnf.Server.IP, cnf.Server.Port),
		Handler:           server.NewService(config.GetConfig, logger, musicService, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// health
	var hs *health.Server
	if cnf.Health.Port != 0 {
		hs, err = health.New(logger, cnf.Server.IP, cnf.Health.Port)
		if err != nil {
			return err
		}
		go func() {
			if err := hs.Serve(); err != nil {
				logger.Errorf("health server: %v", err)
			}
		}()
		defer hs.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s, settings sources %v", srv.Addr, resolver.Sources())
		errCh <- srv.ListenAndServe()
	}()
	if hs != nil {
		hs.SetServing(true)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if hs != nil {
		hs.SetServing(false)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
