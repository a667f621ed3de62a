package core

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ripplelabs/ripple-api/internal/core/srv"
	"github.com/ripplelabs/ripple-api/internal/store/sqlstore"
	"github.com/ripplelabs/ripple-api/pkg/s3"
	basesql "github.com/ripplelabs/ripple-api/pkg/sqlstore"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores      func() *sqlstore.Provider
	httpClient  *http.Client
	httpEngine  *gin.Engine
	fileStorage *s3.S3

	metrics *Metrics
	Plugins
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28,   //days
				Compress:   true, // disabled by default
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	core := &Core{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second * 3},
		metrics:    NewMetrics("ripple_api", "core"),
	}

	// setup store
	setupPostgresStore(core)
	core.Store().SetConflictHook(core.metrics.CountStarConflict)

	if cfg.ObjectStorage.Endpoint != "" {
		fileStorage, err := s3.NewS3Client(
			cfg.ObjectStorage.Endpoint,
			cfg.ObjectStorage.Region,
			cfg.ObjectStorage.Bucket,
			cfg.ObjectStorage.PublicDomain,
			cfg.ObjectStorage.AccessKey,
			cfg.ObjectStorage.SecretKey,
		)
		if err != nil {
			panic(err)
		}
		core.fileStorage = fileStorage
	}

	core.srv = srv.SetupSrvs(
		srv.ApplyAI(cfg.AI), // ai provider select
		// web socket
		srv.ApplyTower(),
	)

	return core
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func setupPostgresStore(core *Core) {
	core.stores = sqlstore.MustSetup(basesql.ConnectConfig{DSN: core.cfg.Postgres.FormatDSN()})
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

func (s *Core) FileStorage() *s3.S3 {
	return s.fileStorage
}

func (s *Core) HttpClient() *http.Client {
	return s.httpClient
}

func (s *Core) HttpEngine() *gin.Engine {
	if s.httpEngine == nil {
		if os.Getenv("GIN_MODE") == "" {
			gin.SetMode(gin.ReleaseMode)
		}
		s.httpEngine = gin.New()
		s.httpEngine.Use(gin.Recovery())
	}
	return s.httpEngine
}
