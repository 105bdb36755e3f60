// Package config loads transpiler settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/imlargo/vpd-transpiler/pkg/template"
	"github.com/imlargo/vpd-transpiler/pkg/transpiler"
)

type Config struct {
	Framework         string
	RootType          string
	Target            string
	TemplateCacheSize int
	LogLevel          string
	LogFormat         string
}

// Load reads .env files (when present) and then the VPD_* variables.
// Variables already set in the environment take precedence over .env.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	cacheSize := 0
	if raw := strings.TrimSpace(os.Getenv("VPD_TEMPLATE_CACHE_SIZE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("VPD_TEMPLATE_CACHE_SIZE: invalid value %q", raw)
		}
		cacheSize = n
	}

	cfg := &Config{
		Framework:         firstNonEmpty(strings.TrimSpace(os.Getenv("VPD_FRAMEWORK")), transpiler.DefaultFramework),
		RootType:          firstNonEmpty(strings.TrimSpace(os.Getenv("VPD_ROOT_TYPE")), transpiler.DefaultRootType),
		Target:            firstNonEmpty(strings.TrimSpace(os.Getenv("VPD_TARGET")), "esnext"),
		TemplateCacheSize: cacheSize,
		LogLevel:          firstNonEmpty(strings.TrimSpace(os.Getenv("VPD_LOG_LEVEL")), "info"),
		LogFormat:         firstNonEmpty(strings.TrimSpace(os.Getenv("VPD_LOG_FORMAT")), "text"),
	}
	if _, err := transpiler.ParseTarget(cfg.Target); err != nil {
		return nil, fmt.Errorf("VPD_TARGET: %w", err)
	}
	return cfg, nil
}

// Options converts the config into transpiler options. compiler may be nil
// when only inline templates are used; it is wrapped in an LRU cache when
// TemplateCacheSize is positive.
func (c *Config) Options(compiler template.Compiler, logger *slog.Logger) ([]transpiler.Option, error) {
	target, err := transpiler.ParseTarget(c.Target)
	if err != nil {
		return nil, err
	}

	if compiler != nil && c.TemplateCacheSize > 0 {
		cached, err := template.NewCache(compiler, c.TemplateCacheSize)
		if err != nil {
			return nil, err
		}
		compiler = cached
	}

	opts := []transpiler.Option{
		transpiler.WithFramework(c.Framework),
		transpiler.WithRootType(c.RootType),
		transpiler.WithTarget(target),
		transpiler.WithLogger(logger),
	}
	if compiler != nil {
		opts = append(opts, transpiler.WithTemplateCompiler(compiler))
	}
	return opts, nil
}

// NewLogger creates a logger for the given level and format ("text" or
// "json"). Unknown levels fall back to info.
func NewLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Logger builds the logger described by the config.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return NewLogger(c.LogLevel, c.LogFormat, w)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
