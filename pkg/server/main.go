// Package server implements taild, the daemon serving the last N lines of
// registered log files over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	cmap "github.com/orcaman/concurrent-map/v2"
	"gorm.io/gorm"

	"github.com/nlines/taild/pkg/api"
	"github.com/nlines/taild/pkg/cron"
	"github.com/nlines/taild/pkg/fs"
	"github.com/nlines/taild/pkg/model"
	"github.com/nlines/taild/pkg/tail"
)

type Server struct {
	e      *echo.Echo
	db     *gorm.DB
	cron   *cron.Cron
	config *Config
	logger *slog.Logger

	engine    *tail.Engine
	fileStats cmap.ConcurrentMap[string, api.FileStat]
}

func New(configPath string) (*Server, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

func newSlogger(writer io.Writer, addSource bool, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		AddSource: addSource,
		Level:     level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					_, after, _ := strings.Cut(source.File, "taild")
					source.File = after
				}
			}
			return a
		},
	}))
}

func NewWithConfig(cfg *Config) (*Server, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DbURL), &gorm.Config{
		QueryFields: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	for _, dir := range cfg.FileConfigDir {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}

	logWriter := io.Writer(os.Stderr)
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, os.ModePerm); err != nil {
			return nil, err
		}
		logfile, err := os.OpenFile(filepath.Join(cfg.LogDir, "taild.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		logWriter = logfile
	}

	slogger := newSlogger(logWriter, cfg.Debug, cfg.slogLevel())
	s := Server{
		e:      echo.New(),
		cron:   cron.New(),
		db:     db,
		logger: slogger,
		config: cfg,

		engine:    tail.NewEngine(fs.New(), tail.WithBlockSize(cfg.TailBlockSize)),
		fileStats: cmap.New[api.FileStat](),
	}

	v := validator.New()
	s.e.Validator = echoValidator(v.Struct)
	s.e.Debug = cfg.Debug
	s.e.HideBanner = true
	s.e.Logger.SetOutput(io.Discard)

	// Middlewares.
	// The order matters.
	s.e.Use(middleware.RequestID())
	s.e.Use(setLogger(slogger))
	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogLatency:   true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.Int("status", v.Status),
				slog.String("user_agent", v.UserAgent),
				slog.Duration("latency", v.Latency),
			}
			l := getLogger(c)
			l.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST", attrs...)
			return nil
		},
	}))

	s.registerAPIs(s.e)

	return &s, nil
}

func (s *Server) Start(rootCtx context.Context) {
	l := s.logger
	ctx, cancel := context.WithCancelCause(rootCtx)
	defer cancel(context.Canceled)

	go func() {
		l.Info("Running HTTP server", slog.String("addr", s.config.ListenAddr))
		if err := s.e.Start(s.config.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Fail to run HTTP server", slogErrAttr(err))
			cancel(err)
		}
	}()

	err := s.cron.AddJob(jobStatRefresh, s.config.StatRefreshInterval, func() {
		s.refreshFileStats(ctx)
	})
	if err != nil {
		l.Error("Fail to schedule stat refresh", slogErrAttr(err))
	}
	s.refreshFileStats(ctx)

	<-ctx.Done()
	s.cron.Stop()
	l.Info("Shutting down HTTP server")
	_ = s.e.Shutdown(context.Background())
}
