package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when Load receives a nil or non-pointer target.
	ErrNilPointer = errors.New("config target must be a non-nil pointer to a struct")

	cacheMu sync.RWMutex
	cache   = map[reflect.Type]any{}

	loadDotenv sync.Once
)

// Load populates cfg from environment variables. The first call for a
// given struct type parses the environment; later calls return the cached
// value. A .env file in the working directory is loaded once per process
// before the first parse; a missing file is not an error.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if cfg == nil || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNilPointer
	}

	loadDotenv.Do(func() {
		_ = godotenv.Load()
	})

	typ := v.Elem().Type()

	cacheMu.RLock()
	cached, ok := cache[typ]
	cacheMu.RUnlock()
	if ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse %s from environment: %w", typ, err)
	}

	cacheMu.Lock()
	cache[typ] = v.Elem().Interface()
	cacheMu.Unlock()

	return nil
}

// MustLoad is Load that panics on failure. Useful during startup where a
// missing required variable should abort the process.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
