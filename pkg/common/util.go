package common

import (
	"os"
	"testing"
	"time"
)

func IsTestEnv() bool {
	return testing.Testing()
}
func IsDevelopment() bool {
	return os.Getenv(EnvKeyGoEnv) == "development"
}

func IsProduction() bool {
	return os.Getenv(EnvKeyGoEnv) == "production"
}

// EnsureUTC normalizes a timestamp to UTC before it is stored or compared.
func EnsureUTC(t time.Time) time.Time {
	return t.UTC()
}

func Mapper[T any, R any](items []T, mapFn func(T) R) []R {
	mapped := make([]R, len(items))
	for i := 0; i < len(items); i++ {
		mapped[i] = mapFn(items[i])
	}
	return mapped
}

func Reducer[T any, R any](items []T, reduceFn func(R, T) R, initAcc R) R {
	finalAcc := initAcc
	for i := 0; i < len(items); i++ {
		finalAcc = reduceFn(finalAcc, items[i])
	}
	return finalAcc
}
