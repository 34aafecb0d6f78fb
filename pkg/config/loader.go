package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry holds the parsed value of one configuration type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache           sync.Map // type name -> *entry
	defaultEnvFiles sync.Once
)

// Load parses environment variables into v. The first successful parse of a
// type is cached and copied into v on every subsequent call. Failed parses
// are not cached.
func Load[T any](v *T) error {
	defaultEnvFiles.Do(func() {
		// A missing .env file is normal outside local development.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeName[T]()
	actual, _ := cache.LoadOrStore(key, &entry{})
	e := actual.(*entry)

	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})

	if e.err != nil {
		// Drop the failed entry so a corrected environment can be loaded later.
		cache.CompareAndDelete(key, e)
		return e.err
	}

	*v = e.value.(T)
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnvFiles reads the given .env files into the process environment
// without overriding variables that are already set.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reset drops every cached configuration.
func Reset() {
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
