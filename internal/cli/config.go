package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds CLI-level configuration: where the persisted bitset file
// lives and whether mutating commands should run Optimize before writing.
type Config struct {
	BitsetPath      string `json:"bitset_path"` //nolint:tagliatelle // snake_case for config file
	OptimizeOnWrite bool   `json:"optimize_on_write,omitempty"`
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".roaring.json"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("failed to read config file")
	errConfigInvalid      = errors.New("invalid config")
	errBitsetPathEmpty    = errors.New("bitset_path cannot be empty")
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{BitsetPath: "bitset.roaring"}
}

// getGlobalConfigPath returns $XDG_CONFIG_HOME/roaring/config.json, falling
// back to ~/.config/roaring/config.json.
func getGlobalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "roaring", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "roaring", "config.json")
}

// LoadConfigInput bundles LoadConfig's parameters for the config
// precedence chain: defaults -> global -> project -> CLI overrides.
type LoadConfigInput struct {
	WorkDir            string
	ConfigPath         string
	BitsetPathOverride string
	Env                map[string]string
}

// LoadConfig loads configuration with the following precedence (highest
// wins): defaults, global user config, project config (or explicit
// --config file), then CLI flag overrides. An empty bitset_path and a false
// optimize_on_write count as unset, so a later layer cannot switch
// optimize_on_write back off once an earlier layer turned it on.
func LoadConfig(in LoadConfigInput) (Config, error) {
	cfg := DefaultConfig()

	globalCfg, err := loadConfigFile(getGlobalConfigPath(in.Env), false)
	if err != nil {
		return Config{}, err
	}

	cfg = mergeConfig(cfg, globalCfg)

	var (
		projectPath string
		mustExist   bool
	)

	if in.ConfigPath != "" {
		projectPath = in.ConfigPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(in.WorkDir, projectPath)
		}

		mustExist = true
	} else {
		projectPath = filepath.Join(in.WorkDir, ConfigFileName)
	}

	projectCfg, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	cfg = mergeConfig(cfg, projectCfg)

	if in.BitsetPathOverride != "" {
		cfg.BitsetPath = in.BitsetPathOverride
	}

	if cfg.BitsetPath == "" {
		return Config{}, errBitsetPathEmpty
	}

	if !filepath.IsAbs(cfg.BitsetPath) {
		cfg.BitsetPath = filepath.Join(in.WorkDir, cfg.BitsetPath)
	}

	return cfg, nil
}

func loadConfigFile(path string, mustExist bool) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled, same as teacher's config loader
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
			}

			return Config{}, nil
		}

		return Config{}, fmt.Errorf("%w: %s", errConfigFileRead, path)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.BitsetPath != "" {
		base.BitsetPath = overlay.BitsetPath
	}

	if overlay.OptimizeOnWrite {
		base.OptimizeOnWrite = true
	}

	return base
}

// FormatConfig returns cfg as formatted JSON, for the print-config command.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}

// EnvMap converts os.Environ()-style "KEY=VALUE" slices into a map, the
// form LoadConfigInput expects.
func EnvMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			out[k] = v
		}
	}

	return out
}
