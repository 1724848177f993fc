// Package logger хранит синглтон zap-логгера приложения.
package logger

import (
	"go.uber.org/zap"
)

// Log - синглтон логгера, до инициализации ничего не пишет
var Log *zap.Logger = zap.NewNop()

// Initialize создаёт production-логгер с заданным уровнем и подменяет синглтон
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}
