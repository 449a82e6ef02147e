// Package config loads the optional fiber.yaml of the demo CLI.
package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/fiber/pkg/core"
	"github.com/go-drift/fiber/pkg/engine"
	"github.com/go-drift/fiber/pkg/errors"
)

// FileName is the name of the configuration file.
const FileName = "fiber.yaml"

// Config represents the optional fiber.yaml configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// SchedulerConfig contains work loop settings. Durations use Go syntax
// ("8ms").
type SchedulerConfig struct {
	Budget        time.Duration `yaml:"budget,omitempty"`
	FrameInterval time.Duration `yaml:"frame_interval,omitempty"`
	MinRemaining  time.Duration `yaml:"min_remaining,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Path is the configuration file, empty when none was found.
	Path          string
	ModulePath    string
	AppName       string
	Budget        time.Duration
	FrameInterval time.Duration
	MinRemaining  time.Duration
	LogLevel      slog.Level
	LogFormat     string
}

// Load reads the configuration file at path. A missing file yields an
// empty Config and found == false.
func Load(path string) (cfg *Config, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, false, nil
		}
		return nil, false, configError("read", fmt.Errorf("failed to read %s: %w", path, err))
	}

	cfg = &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, false, configError("parse", fmt.Errorf("failed to parse %s: %w", path, err))
	}
	return cfg, true, nil
}

// Resolve loads the configuration file at path (if present) and resolves
// defaults. The application name defaults to the last element of the
// enclosing Go module path.
func Resolve(path string) (*Resolved, error) {
	cfg, found, err := Load(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	modulePath := ""
	if root, err := FindModuleRoot(dir); err == nil {
		modulePath, _ = readModulePath(root)
	}

	res := &Resolved{
		ModulePath:    modulePath,
		AppName:       strings.TrimSpace(cfg.App.Name),
		Budget:        cfg.Scheduler.Budget,
		FrameInterval: cfg.Scheduler.FrameInterval,
		MinRemaining:  cfg.Scheduler.MinRemaining,
		LogFormat:     strings.ToLower(strings.TrimSpace(cfg.Log.Format)),
	}
	if found {
		res.Path = path
	}
	if res.AppName == "" {
		res.AppName = defaultAppName(modulePath, dir)
	}
	if res.Budget == 0 {
		res.Budget = engine.DefaultBudget
	}
	if res.FrameInterval == 0 {
		res.FrameInterval = engine.DefaultFrameInterval
	}
	if res.MinRemaining == 0 {
		res.MinRemaining = core.DefaultMinRemaining
	}
	if res.LogFormat == "" {
		res.LogFormat = "text"
	}
	if err := res.LogLevel.UnmarshalText([]byte(orDefault(cfg.Log.Level, "info"))); err != nil {
		return nil, configError("resolve", fmt.Errorf("log.level: %w", err))
	}

	if err := res.validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Resolved) validate() error {
	switch {
	case r.Budget < 0:
		return configError("validate", fmt.Errorf("scheduler.budget must be positive, got %v", r.Budget))
	case r.FrameInterval < 0:
		return configError("validate", fmt.Errorf("scheduler.frame_interval must be positive, got %v", r.FrameInterval))
	case r.MinRemaining < 0:
		return configError("validate", fmt.Errorf("scheduler.min_remaining must be positive, got %v", r.MinRemaining))
	case r.MinRemaining >= r.Budget:
		return configError("validate", fmt.Errorf("scheduler.min_remaining (%v) must be below scheduler.budget (%v)", r.MinRemaining, r.Budget))
	}
	switch r.LogFormat {
	case "text", "json":
	default:
		return configError("validate", fmt.Errorf("log.format must be text or json, got %q", r.LogFormat))
	}
	return nil
}

func configError(op string, err error) error {
	return &errors.FiberError{Op: "config." + op, Kind: errors.KindConfig, Err: err, Timestamp: time.Now()}
}

// FindModuleRoot walks up from dir to find go.mod.
func FindModuleRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func readModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := ""
	if abs, err := filepath.Abs(dir); err == nil {
		base = filepath.Base(abs)
	}
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "fiber_app"
	}
	return base
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
