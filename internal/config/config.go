package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// Exit codes
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInterrupted  = 130
)

const (
	AppName       = "create-app"
	ConfigName    = "config"
	EnvPrefix     = "CREATE_APP"
	DefaultCommit = "Initialize project using Create App"
)

// DefaultSafeFiles lists entries that may already exist in a target directory
// without blocking project creation.
var DefaultSafeFiles = []string{
	".DS_Store",
	".git",
	".gitattributes",
	".gitignore",
	".gitlab-ci.yml",
	".hg",
	".hgcheck",
	".hgignore",
	".idea",
	".npmignore",
	".travis.yml",
	"docs",
	"LICENSE",
	"README.md",
	"mkdocs.yml",
	"Thumbs.db",
}

// Config represents the global configuration
type Config struct {
	PackageManager string    `mapstructure:"package_manager" yaml:"package_manager,omitempty"`
	Template       string    `mapstructure:"template" yaml:"template,omitempty"`
	ScriptsVersion string    `mapstructure:"scripts_version" yaml:"scripts_version,omitempty"`
	SafeFiles      []string  `mapstructure:"safe_files" yaml:"safe_files,omitempty"`
	Git            GitConfig `mapstructure:"git" yaml:"git"`
}

// GitConfig controls repository initialization after scaffolding
type GitConfig struct {
	Init          bool   `mapstructure:"init" yaml:"init"`
	CommitMessage string `mapstructure:"commit_message" yaml:"commit_message,omitempty"`
}

// AllSafeFiles returns the default safe list extended with configured entries.
func (c *Config) AllSafeFiles() []string {
	files := make([]string, 0, len(DefaultSafeFiles)+len(c.SafeFiles))
	files = append(files, DefaultSafeFiles...)
	for _, f := range c.SafeFiles {
		f = strings.TrimSpace(f)
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")

	v.SetDefault("package_manager", "")
	v.SetDefault("template", "")
	v.SetDefault("scripts_version", "")
	v.SetDefault("safe_files", []string{})
	v.SetDefault("git.init", true)
	v.SetDefault("git.commit_message", DefaultCommit)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the global configuration. A missing config file is not an error;
// defaults and CREATE_APP_* environment variables still apply.
func Load() (*Config, error) {
	configDir, err := GetGlobalConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configDir)
}

// LoadFrom reads config.yaml from dir.
func LoadFrom(dir string) (*Config, error) {
	v := newViper()
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &config, nil
}

// SaveGlobal writes the configuration to dir/config.yaml.
// Keys already present in the file that Config does not know about are preserved.
func SaveGlobal(dir string, config *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(dir, ConfigName+".yaml")

	var existing map[string]interface{}
	if content, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(content, &existing); err != nil {
			return fmt.Errorf("parsing existing config: %w", err)
		}
	}
	if existing == nil {
		existing = make(map[string]interface{})
	}

	content, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var updated map[string]interface{}
	if err := yaml.Unmarshal(content, &updated); err != nil {
		return fmt.Errorf("re-reading config: %w", err)
	}
	for k, v := range updated {
		existing[k] = v
	}

	content, err = yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// GetGlobalConfigDir returns the global config directory
func GetGlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", AppName), nil
}
