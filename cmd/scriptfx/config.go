package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/internal/auth"
	"github.com/mgomes/scriptfx/logging"
)

const (
	defaultConfigPath = "scriptfx.toml"
	defaultStorePath  = "scriptfx.db"
	defaultAuthURL    = "http://localhost:8080/auth"
)

type cliConfig struct {
	Auth   auth.Config  `toml:"auth"`
	Store  storeConfig  `toml:"store"`
	Log    logConfig    `toml:"log"`
	Engine engineConfig `toml:"engine"`
}

type storeConfig struct {
	Path string `toml:"path"`
}

type logConfig struct {
	Level string `toml:"level"`
}

type engineConfig struct {
	Kind    string `toml:"kind"`
	Workers int    `toml:"workers"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		Auth:   auth.Config{URL: defaultAuthURL},
		Store:  storeConfig{Path: defaultStorePath},
		Log:    logConfig{Level: "info"},
		Engine: engineConfig{Kind: "sync"},
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (cliConfig, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cliConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cliConfig{}, fmt.Errorf("parse %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c cliConfig) validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("config: store.path is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Engine.Kind {
	case "sync", "pool":
	default:
		return fmt.Errorf("config: unknown engine kind %q", c.Engine.Kind)
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("config: engine.workers must be >= 0")
	}
	return nil
}

func (c cliConfig) newEngine() (effect.Engine, error) {
	if c.Engine.Kind != "pool" {
		return effect.Sync{}, nil
	}
	pool, err := effect.NewPool(effect.PoolConfig{Workers: c.Engine.Workers})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (c cliConfig) newLogger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// app is everything a command needs to discharge auth scripts.
type app struct {
	engine effect.Engine
	env    auth.Env
	store  *auth.Store
}

func (a *app) Close() error {
	return a.store.Close()
}

func openApp(ctx context.Context, cfg cliConfig, logOut io.Writer) (*app, error) {
	engine, err := cfg.newEngine()
	if err != nil {
		return nil, err
	}
	logger, err := cfg.newLogger(logOut)
	if err != nil {
		return nil, err
	}
	store, err := auth.OpenStore(ctx, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	return &app{
		engine: engine,
		env: auth.Env{
			Config: cfg.Auth,
			Users:  store,
			Log:    logging.NewSlog(logger),
		},
		store: store,
	}, nil
}
