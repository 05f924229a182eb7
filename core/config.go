package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	Env           string // DEV (local; default), TEST, QA, PROD
	Debug         bool
	TestMode      bool
	AppName       string
	Build         string
	RollbarToken  string
	FixturesDir   string // empty: use the embedded fixtures
	GenerateCount int

	Server struct {
		Host            string
		Address         string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	Storage struct {
		Driver string
		Dir    string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
		Prefix   string
	}

	Database struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}
}

func (c *Config) DatabaseAddress() string {
	return c.Database.Host + ":" + c.Database.Port
}

// NewConfig reads the configuration from the environment and, when present, from config/.env.<env>.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Classbook")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("fixturesDir", "")
	v.SetDefault("generateCount", 300)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("storage.driver", StorageFile)
	v.SetDefault("storage.dir", "data")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "classbook:")
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "classbook")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:           env,
		Debug:         v.GetBool("debug"),
		TestMode:      v.GetBool("testMode"),
		AppName:       v.GetString("appName"),
		Build:         v.GetString("build"),
		RollbarToken:  v.GetString("rollbarToken"),
		FixturesDir:   v.GetString("fixturesDir"),
		GenerateCount: v.GetInt("generateCount"),
	}
	conf.Server.Host = v.GetString("server.host")
	conf.Server.Address = v.GetString("server.address")
	conf.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	conf.Server.DisableReqLogs = v.GetBool("server.disableReqLogs")
	conf.Storage.Driver = CleanString(v.GetString("storage.driver"), true /* lower */)
	conf.Storage.Dir = v.GetString("storage.dir")
	conf.Redis.Addr = v.GetString("redis.addr")
	conf.Redis.Password = v.GetString("redis.password")
	conf.Redis.DB = v.GetInt("redis.db")
	conf.Redis.Prefix = v.GetString("redis.prefix")
	conf.Database.Engine = v.GetString("database.engine")
	conf.Database.Host = v.GetString("database.host")
	conf.Database.Port = v.GetString("database.port")
	conf.Database.Name = v.GetString("database.name")
	conf.Database.User = v.GetString("database.user")
	conf.Database.Password = v.GetString("database.password")
	conf.Database.DisableTLS = v.GetBool("database.disableTLS")

	return conf, nil
}
