package server

import (
	"context"
	"net/http"
	"portfolio-server/pkg/config"
	"portfolio-server/pkg/log"
	"portfolio-server/pkg/middleware"
	"portfolio-server/portfolio_server/data"
	"portfolio-server/portfolio_server/music"
	"time"

	"github.com/gin-gonic/gin"
)

// MusicService provides the music page.
type MusicService interface {
	Page(ctx context.Context) (music.Page, error)
	Refresh(ctx context.Context) (music.Snapshot, music.Report, error)
}

// SettingsStore lists and updates settings for operators.
type SettingsStore interface {
	GetAll(ctx context.Context) ([]data.SettingEntity, error)
	Set(ctx context.Context, name, value string) error
}

type portfolioServer struct {
	config   func() *config.Config
	log      log.ILogger
	music    MusicService
	settings SettingsStore
	now      func() time.Time
	updated  string
}

// NewService returns the HTTP handler of the portfolio site.
// settings may be nil, which disables the settings admin routes.
func NewService(conf func() *config.Config, logger log.ILogger, musicService MusicService, settings SettingsStore) http.Handler {
	s := &portfolioServer{
		config:   conf,
		log:      logger,
		music:    musicService,
		settings: settings,
		now:      time.Now,
		updated:  buildTime(),
	}
	return s.routes()
}

func (s *portfolioServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(s.log), middleware.ErrorHandler(s.log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", s.index)
	r.GET("/resume", s.resume)
	r.GET("/projects", s.projects)
	r.GET("/music", s.musicPage)
	r.GET("/contact", s.contact)
	r.NoRoute(s.notFound)

	admin := r.Group("/admin", middleware.BearerAuth(s.log, func() string {
		return s.config().Server.AccessToken
	}))
	admin.POST("/music/refresh", s.refreshMusic)
	if s.settings != nil {
		admin.GET("/settings", s.listSettings)
		admin.PUT("/settings/:name", s.setSetting)
	}
	return r
}
