/*
Package config manages TOML config for the spell-checking service.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/halvardlie/spellwright/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Suggest SuggestConfig `toml:"suggest"`
	Checker CheckerConfig `toml:"checker"`
	Server  ServerConfig  `toml:"server"`
}

// SuggestConfig has suggester-related options (§4.6).
type SuggestConfig struct {
	DefaultMaxDist      float64 `toml:"default_max_dist"`
	DefaultLimit        int     `toml:"default_limit"`
	DamerauCacheSize    int     `toml:"damerau_cache_size"`
	SuggestionCacheSize int     `toml:"suggestion_cache_size"`
}

// CheckerConfig has checker-related options (§4.3).
type CheckerConfig struct {
	CaseFold bool `toml:"case_fold"`
}

// ServerConfig has IPC server limits (§4.9).
type ServerConfig struct {
	MaxPrefixLen int `toml:"max_prefix_len"`
	MaxLimit     int `toml:"max_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/spellcheck
// 2. ~/Library/Application Support/spellcheck (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "spellcheck")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "spellcheck")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/spellcheck/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values, matching §4.6/§4.3/§4.9's defaults.
func DefaultConfig() *Config {
	return &Config{
		Suggest: SuggestConfig{
			DefaultMaxDist:      0.2,
			DefaultLimit:        0,
			DamerauCacheSize:    100000,
			SuggestionCacheSize: 10000,
		},
		Checker: CheckerConfig{
			CaseFold: true,
		},
		Server: ServerConfig{
			MaxPrefixLen: 60,
			MaxLimit:     64,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to recover whatever sections of a malformed TOML
// file still parse, falling back to defaults section by section.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if suggestSection, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(suggestSection, &config.Suggest)
	}
	if checkerSection, ok := utils.ExtractSection(tempConfig, "checker"); ok {
		extractCheckerConfig(checkerSection, &config.Checker)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

// extractSuggestConfig extracts suggester configuration from a map
func extractSuggestConfig(data map[string]any, suggest *SuggestConfig) {
	if val, ok := data["default_max_dist"].(float64); ok {
		suggest.DefaultMaxDist = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		suggest.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "damerau_cache_size"); ok {
		suggest.DamerauCacheSize = val
	}
	if val, ok := utils.ExtractInt64(data, "suggestion_cache_size"); ok {
		suggest.SuggestionCacheSize = val
	}
}

// extractCheckerConfig extracts checker configuration from a map
func extractCheckerConfig(data map[string]any, checker *CheckerConfig) {
	if val, ok := utils.ExtractBool(data, "case_fold"); ok {
		checker.CaseFold = val
	}
}

// extractServerConfig extracts IPC server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_prefix_len"); ok {
		server.MaxPrefixLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
