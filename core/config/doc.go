// Package config provides type-safe environment variable loading with
// caching. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and parses
// environment variables into struct fields via the caarlos0/env library.
//
//	type ClientConfig struct {
//		BaseURL string        `env:"HUUD_API_BASE_URL" envDefault:"https://neyborhuud-serverside.onrender.com/api/v1"`
//		Timeout time.Duration `env:"HUUD_HTTP_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is loaded only once per process; later Load
// calls for the same type return the cached value.
package config
