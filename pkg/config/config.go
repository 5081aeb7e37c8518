package config

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		IP          string `mapstructure:"ip"`
		Port        int
		AccessToken string `mapstructure:"accessToken"`
	}
	Health struct {
		Port int
	}
	Production bool
	Database   struct {
		Driver      string
		DSN         string
		MaxLifeTime int `mapstructure:"maxLifeTime"`
		MaxOpenConn int `mapstructure:"maxOpenConn"`
		MaxIdleConn int `mapstructure:"maxIdleConn"`
	}
	Cache struct {
		Backend string
	}
	Redis struct {
		Host   string
		Port   int
		Pwd    string
		Prefix string
	}
	Music struct {
		Endpoint   string
		NumArtists int `mapstructure:"numArtists"`
		NumSongs   int `mapstructure:"numSongs"`
		TTL        time.Duration
		Timeout    time.Duration
		UserAgent  string `mapstructure:"userAgent"`
	}
	Settings struct {
		Sources []string
	}
	Log struct {
		Level   string
		LogPath string `mapstructure:"logPath"`
	}
}

const envPrefix = "PORTFOLIO"

var (
	mu       sync.RWMutex
	conf     *Config
	onChange []func(*Config)
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.ip", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.accessToken", "")
	v.SetDefault("health.port", 0)
	v.SetDefault("production", false)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "file:portfolio.sqlite")
	v.SetDefault("database.maxLifeTime", 300)
	v.SetDefault("database.maxOpenConn", 10)
	v.SetDefault("database.maxIdleConn", 2)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pwd", "")
	v.SetDefault("redis.prefix", "portfolio")
	v.SetDefault("music.endpoint", "https://ws.audioscrobbler.com/2.0")
	v.SetDefault("music.numArtists", 10)
	v.SetDefault("music.numSongs", 50)
	v.SetDefault("music.ttl", 24*time.Hour)
	v.SetDefault("music.timeout", 10*time.Second)
	v.SetDefault("music.userAgent", "portfolio-server")
	v.SetDefault("settings.sources", []string{"store", "env"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.logPath", "")
}

func newViper(filepath string, typ ...string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if filepath != "" {
		v.SetConfigFile(filepath)
	}
	if len(typ) > 0 {
		v.SetConfigType(typ[0])
	}
	return v
}

// Load reads the configuration file at filepath. An empty filepath yields
// the defaults with environment overrides.
func Load(filepath string, typ ...string) (*Config, error) {
	v := newViper(filepath, typ...)
	if filepath != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	return c, nil
}

// InitConfig loads the configuration and watches the file for changes.
func InitConfig(filepath string, typ ...string) {
	v := newViper(filepath, typ...)
	if filepath != "" {
		if err := v.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		log.Fatal(err)
	}
	mu.Lock()
	conf = c
	mu.Unlock()
	if filepath == "" {
		return
	}
	v.OnConfigChange(func(in fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			log.Printf("config reload failed: %s", err)
			return
		}
		mu.Lock()
		conf = next
		hooks := append([]func(*Config){}, onChange...)
		mu.Unlock()
		for _, f := range hooks {
			f(next)
		}
	})
	v.WatchConfig()
}

// OnChange registers f to be called with the new configuration after a reload.
func OnChange(f func(*Config)) {
	mu.Lock()
	defer mu.Unlock()
	onChange = append(onChange, f)
}

func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return conf
}

// SetConfig replaces the current configuration.
func SetConfig(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	conf = c
}
