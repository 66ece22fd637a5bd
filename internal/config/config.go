// Package config loads fsmode configuration from JSONC files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/fsmode/pkg/fs"
	"github.com/calvinalkan/fsmode/pkg/mode"
)

// Error variables for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrFileModeEmpty      = errors.New("file_mode cannot be empty")
	ErrDirModeEmpty       = errors.New("dir_mode cannot be empty")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized). Modes accept any notation, including
	// objects: "0644", "u=rw,go=r", "rw-r--r--", {"user": {"read": true}}.
	FileMode any    `json:"file_mode,omitempty"`
	DirMode  any    `json:"dir_mode,omitempty"`
	Platform string `json:"platform,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd  string        `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	FileModeValue mode.Value    `json:"-"`
	DirModeValue  mode.Value    `json:"-"`
	PlatformValue mode.Platform `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		FileMode: "0644",
		DirMode:  "0755",
		Platform: "host",
	}
}

// FileName is the default project config file name.
const FileName = ".fsmode.json"

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/fsmode/config.json if set, otherwise ~/.config/fsmode/config.json.
// Returns empty string if home directory cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "fsmode", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "fsmode", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	PlatformOverride string            // --platform flag value; empty means no override
	Env              map[string]string // environment variables
	FS               fs.FS             // filesystem to read from; nil means fs.NewReal()
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/fsmode/config.json or $XDG_CONFIG_HOME/fsmode/config.json)
// 3. Project config file at default location (.fsmode.json, if exists)
// 4. Explicit config file via ConfigPath (replaces 3)
// 5. CLI overrides.
//
// Mode values are lifted once here, so a bad mode in any file fails the load.
func Load(input LoadInput) (Config, error) {
	fsys := input.FS
	if fsys == nil {
		fsys = fs.NewReal()
	}

	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	if path := globalPath(input.Env); path != "" {
		globalCfg, loaded, err := loadFile(fsys, path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = path
			cfg = merge(cfg, globalCfg)
		}
	}

	projectCfg, projectPath, err := loadProject(fsys, workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	if input.PlatformOverride != "" {
		cfg.Platform = input.PlatformOverride
	}

	cfg.EffectiveCwd = workDir

	if err := resolve(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadProject loads the project config file (.fsmode.json) or an explicit config file.
// Returns the config and the path if loaded.
func loadProject(fsys fs.FS, workDir, configPath string) (Config, string, error) {
	if configPath == "" {
		path := filepath.Join(workDir, FileName)

		cfg, loaded, err := loadFile(fsys, path, false)
		if err != nil || !loaded {
			return Config{}, "", err
		}

		return cfg, path, nil
	}

	path := configPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	// Check existence first to provide a clear "not found" error
	exists, err := fsys.Exists(path)
	if err != nil || !exists {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	cfg, _, err := loadFile(fsys, path, true)
	if err != nil {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadFile loads a config file. If mustExist is false, missing files return
// loaded=false.
func loadFile(fsys fs.FS, path string, mustExist bool) (Config, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// Parse decodes a JSONC config document. Comments and trailing commas are
// allowed. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var raw map[string]json.RawMessage

	if err := json.Unmarshal(standardized, &raw); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var cfg Config

	for key, value := range raw {
		switch key {
		case "file_mode":
			cfg.FileMode, err = decodeMode(value, ErrFileModeEmpty)
		case "dir_mode":
			cfg.DirMode, err = decodeMode(value, ErrDirModeEmpty)
		case "platform":
			err = json.Unmarshal(value, &cfg.Platform)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}

		if err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// decodeMode keeps a mode in its JSON shape: string, number or object.
// An explicit "" or null is an error rather than "unset".
func decodeMode(data json.RawMessage, errEmpty error) (any, error) {
	var v any

	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if v == nil || v == "" {
		return nil, errEmpty
	}

	return v, nil
}

func merge(base, overlay Config) Config {
	if overlay.FileMode != nil {
		base.FileMode = overlay.FileMode
	}

	if overlay.DirMode != nil {
		base.DirMode = overlay.DirMode
	}

	if overlay.Platform != "" {
		base.Platform = overlay.Platform
	}

	return base
}

func resolve(cfg *Config) error {
	var err error

	cfg.FileModeValue, err = mode.Lift(cfg.FileMode)
	if err != nil {
		return fmt.Errorf("%w: file_mode: %w", ErrConfigInvalid, err)
	}

	cfg.DirModeValue, err = mode.Lift(cfg.DirMode)
	if err != nil {
		return fmt.Errorf("%w: dir_mode: %w", ErrConfigInvalid, err)
	}

	cfg.PlatformValue, err = mode.ParsePlatform(cfg.Platform)
	if err != nil {
		return fmt.Errorf("%w: platform: %w", ErrConfigInvalid, err)
	}

	return nil
}

// Format renders the serialized part of cfg as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}
