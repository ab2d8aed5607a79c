package config

import shared "github.com/opsboard/taskboard/pkg/config"

type Config struct {
	Postgres shared.Postgres   `koanf:"postgres"`
	Redis    shared.Redis      `koanf:"redis"`
	Http     shared.HttpServer `koanf:"http"`

	LookupCacheTTLSec int `koanf:"lookup_cache_ttl_sec"`
}

func Default() Config {
	return Config{
		Postgres: shared.Postgres{
			Host:    "localhost",
			Port:    "5432",
			DB:      "taskboard",
			SSLMode: "disable",
		},
		Redis: shared.Redis{
			Address: "localhost:6379",
		},
		Http: shared.HttpServer{
			Address: ":8080",
		},
		LookupCacheTTLSec: 300,
	}
}
