package server

import (
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/labstack/echo/v4"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nlines/taild/pkg/api"
	"github.com/nlines/taild/pkg/cron"
	"github.com/nlines/taild/pkg/fs"
	"github.com/nlines/taild/pkg/model"
	"github.com/nlines/taild/pkg/tail"
)

type TestEnv struct {
	t       *testing.T
	httpSrv *httptest.Server
	server  *Server
}

func (te *TestEnv) RESTClient() *resty.Client {
	return resty.New().SetBaseURL(te.httpSrv.URL + "/api/v1")
}

func (te *TestEnv) RegisterFile(name, path string) {
	require.NoError(te.t, te.server.db.Create(&model.LogFile{
		Name: name,
		Path: path,
	}).Error)
	require.NoError(te.t, te.server.db.Create(&model.LogFileMeta{
		Name: name,
	}).Error)
}

func NewTestEnv(t *testing.T) *TestEnv {
	slogger := newSlogger(os.Stderr, true, slog.LevelInfo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	v := validator.New()
	e.Validator = echoValidator(v.Struct)

	dbFile, err := os.CreateTemp("", "taild*.db")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = dbFile.Close()
		_ = os.Remove(dbFile.Name())
	})
	db, err := gorm.Open(sqlite.Open(dbFile.Name()), &gorm.Config{
		QueryFields:            true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// To resolve the "database is locked" error.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.AutoMigrate(db))

	s := &Server{
		e:      e,
		db:     db,
		cron:   cron.New(),
		logger: slogger,
		config: &Config{
			FileConfigDir: []string{t.TempDir()},
			MaxTailLines:  1000,
		},
		engine:    tail.NewEngine(fs.New()),
		fileStats: cmap.New[api.FileStat](),
	}
	s.e.Use(setLogger(slogger))
	s.registerAPIs(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &TestEnv{
		t:       t,
		httpSrv: srv,
		server:  s,
	}
}
