package config

import (
	"os"

	"github.com/cinerama/cinerama/internal/util"
)

type Config struct {
	Addr     string
	CacheURL string
	MQURL    string
}

// LoadConfig reads the environment. CacheURL and MQURL are optional;
// leaving them empty disables the seat-availability mirror and the event
// publisher.
func LoadConfig() (*Config, error) {
	if err := util.LoadEnv(); err != nil {
		return nil, err
	}
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	cacheURL := os.Getenv("CACHE_URL")
	mqURL := os.Getenv("RABBIT_MQ_URL")
	return &Config{
		Addr:     addr,
		CacheURL: cacheURL,
		MQURL:    mqURL,
	}, nil
}
