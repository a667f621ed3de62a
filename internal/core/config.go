package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ripplelabs/ripple-api/internal/core/srv"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var conf CoreConfig
	if err = toml.Unmarshal(raw, &conf); err != nil {
		panic(err)
	}
	return conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string      `toml:"addr"`
	Log      Log         `toml:"log"`
	Postgres PGConfig    `toml:"postgres"`
	Redis    RedisConfig `toml:"redis"`

	AI srv.AIConfig `toml:"ai"`

	Security Security `toml:"security"`

	ObjectStorage ObjectStorage `toml:"object_storage"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("RIPPLE_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.Redis.FromENV()
	c.AI.FromENV()
	c.Security.FromENV()
	c.ObjectStorage.FromENV()
}

type Security struct {
	TokenSecret   string `toml:"token_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

func (s *Security) FromENV() {
	s.TokenSecret = os.Getenv("RIPPLE_API_TOKEN_SECRET")
	s.TokenTTLHours, _ = strconv.Atoi(os.Getenv("RIPPLE_API_TOKEN_TTL_HOURS"))
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("RIPPLE_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func (r *RedisConfig) FromENV() {
	r.Addr = os.Getenv("RIPPLE_API_REDIS_ADDR")
	r.Password = os.Getenv("RIPPLE_API_REDIS_PASSWORD")
	r.DB, _ = strconv.Atoi(os.Getenv("RIPPLE_API_REDIS_DB"))
}

type ObjectStorage struct {
	Endpoint     string `toml:"endpoint"`
	Region       string `toml:"region"`
	Bucket       string `toml:"bucket"`
	PublicDomain string `toml:"public_domain"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
}

func (o *ObjectStorage) FromENV() {
	o.Endpoint = os.Getenv("RIPPLE_API_S3_ENDPOINT")
	o.Region = os.Getenv("RIPPLE_API_S3_REGION")
	o.Bucket = os.Getenv("RIPPLE_API_S3_BUCKET")
	o.PublicDomain = os.Getenv("RIPPLE_API_S3_PUBLIC_DOMAIN")
	o.AccessKey = os.Getenv("RIPPLE_API_S3_ACCESS_KEY")
	o.SecretKey = os.Getenv("RIPPLE_API_S3_SECRET_KEY")
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("RIPPLE_API_LOG_LEVEL")
	l.Path = os.Getenv("RIPPLE_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
