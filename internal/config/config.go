package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Site   Site   `yaml:"site"`
	Server Server `yaml:"server"`
}

type Site struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"baseURL"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`

	// redis, memcached, or none
	CacheBackend string `yaml:"cacheBackend"`

	FeedCacheTTLSeconds int    `yaml:"feedCacheTTLSeconds"`
	TemplateTTLSeconds  int    `yaml:"templateTTLSeconds"`
	JwtSecret           string `yaml:"jwtSecret"`
	EnableTrace         bool   `yaml:"enableTrace"`
	TraceEndpoint       string `yaml:"traceEndpoint"`
}

func (s Server) FeedCacheTTL() time.Duration {
	if s.FeedCacheTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.FeedCacheTTLSeconds) * time.Second
}

func (s Server) TemplateTTL() time.Duration {
	if s.TemplateTTLSeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(s.TemplateTTLSeconds) * time.Second
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}

	return config, nil
}
