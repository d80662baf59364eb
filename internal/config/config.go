package config

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = "8000"
	DefaultRedisChannel = "webhook-receiver:payloads"
	DefaultSenderURL    = "http://localhost:8000/webhook"
)

type RedisConfig struct {
	Addr        string
	User        string
	Password    string
	DB          int
	Channel     string
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

// GetListenAddr returns host:port for the receiver, 0.0.0.0:8000 unless HOST or PORT are set.
func GetListenAddr() string {
	return net.JoinHostPort(getEnv("HOST", DefaultHost), getEnv("PORT", DefaultPort))
}

// GetMaxBodyBytes returns the request body limit. Zero means unlimited.
func GetMaxBodyBytes() int64 {
	n, err := strconv.ParseInt(os.Getenv("MAX_BODY_BYTES"), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// GetRedisConfig reads the payload mirror settings. An empty Addr disables the mirror.
func GetRedisConfig() RedisConfig {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		User:     os.Getenv("REDIS_USER"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		Channel:  getEnv("REDIS_CHANNEL", DefaultRedisChannel),
	}
}

func GetLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func GetSenderURL() string {
	return getEnv("WEBHOOK_URL", DefaultSenderURL)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
