package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"casper/internal/errors"
	"casper/pkg/types"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the start location, view preferences, sidebar contents and
// the helpers used to open files.
type Config struct {
	Start struct {
		Directory string `yaml:"directory"` // Initial folder; empty means home
	} `yaml:"start"`
	View struct {
		Mode        string `yaml:"mode"`         // list or grid
		AutoRefresh bool   `yaml:"auto_refresh"` // Reload when the current folder changes on disk
	} `yaml:"view"`
	Clipboard struct {
		Backend string `yaml:"backend"` // system or memory
	} `yaml:"clipboard"`
	Sidebar struct {
		StandardDirs []string `yaml:"standard_dirs"` // Home sub-folders shown when present
		ShowMounts   bool     `yaml:"show_mounts"`   // List mounted volumes
		SkipFSTypes  []string `yaml:"skip_fstypes"`  // Filesystem types never listed as volumes
	} `yaml:"sidebar"`
	Launcher struct {
		OpenCommand string `yaml:"open_command"` // Opens a file with its default application
	} `yaml:"launcher"`
	Logging struct {
		Debug bool   `yaml:"debug"` // Enable debug output
		JSON  bool   `yaml:"json"`  // One JSON object per line
		File  string `yaml:"file"`  // Also append to this file
	} `yaml:"logging"`
	Theme struct {
		Name    string `yaml:"name"`    // Theme name (default, dark, light, ...)
		Primary string `yaml:"primary"` // Headers and the cursor row
		Accent  string `yaml:"accent"`  // Directories
		Muted   string `yaml:"muted"`   // Hidden files and secondary text
		Error   string `yaml:"error"`   // Error messages
		Border  string `yaml:"border"`  // Pane borders
	} `yaml:"theme"`
}

// DefaultPath returns ~/.config/casper/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "casper", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/casper/config.yaml).
func LoadConfig() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.fillTheme()
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Keys missing from the file keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.fillTheme()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Start.Directory = ""
	cfg.View.Mode = types.ViewList.String()
	cfg.View.AutoRefresh = false
	cfg.Clipboard.Backend = "system"

	cfg.Sidebar.StandardDirs = []string{"Downloads", "Music", "Pictures", "Videos", "Documents"}
	cfg.Sidebar.ShowMounts = true
	cfg.Sidebar.SkipFSTypes = []string{"squashfs", "tmpfs", "devtmpfs", "overlay", "proc", "sysfs"}

	cfg.Launcher.OpenCommand = "xdg-open"

	// colors are filled from the theme after the file is read
	cfg.Theme.Name = "default"
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns a ConfigError naming the offending key.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if _, err := types.ParseViewMode(c.View.Mode); err != nil {
		return errors.NewConfigError("invalid value", "view.mode", errors.InvalidConfig, err)
	}

	switch c.Clipboard.Backend {
	case "system", "memory":
	default:
		return errors.NewConfigError("invalid value", "clipboard.backend", errors.InvalidConfig,
			fmt.Errorf("unknown clipboard backend %q", c.Clipboard.Backend))
	}

	if strings.TrimSpace(c.Launcher.OpenCommand) == "" {
		return errors.NewConfigError("missing value", "launcher.open_command", errors.InvalidConfig, nil)
	}

	for i, name := range c.Sidebar.StandardDirs {
		if name == "" || strings.ContainsRune(name, filepath.Separator) {
			return errors.NewConfigError("invalid value", fmt.Sprintf("sidebar.standard_dirs[%d]", i), errors.InvalidConfig,
				fmt.Errorf("%q must be a plain folder name", name))
		}
	}

	if c.Start.Directory != "" {
		dir := ExpandHome(c.Start.Directory)
		info, err := os.Stat(dir)
		if err != nil {
			return errors.NewConfigError("invalid value", "start.directory", errors.InvalidConfig, err)
		}
		if !info.IsDir() {
			return errors.NewConfigError("invalid value", "start.directory", errors.InvalidConfig,
				fmt.Errorf("%s is not a directory", dir))
		}
	}

	return nil
}

// ViewMode returns the configured initial view.
func (c *Config) ViewMode() types.ViewMode {
	mode, _ := types.ParseViewMode(c.View.Mode)
	return mode
}

// StartDirectory returns the folder to open at startup.
func (c *Config) StartDirectory() (string, error) {
	if c.Start.Directory != "" {
		return filepath.Abs(ExpandHome(c.Start.Directory))
	}
	return os.UserHomeDir()
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// New creates a new configuration instance with default values.
func New() *Config {
	cfg := defaultConfig()
	cfg.fillTheme()
	return cfg
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary": "213", // Purple
			"accent":  "39",  // Blue
			"muted":   "245", // Grey
			"error":   "196", // Red
			"border":  "213", // Purple
		},
		"dark": {
			"primary": "105", // Dark Blue
			"accent":  "78",  // Dark Green
			"muted":   "240", // Dark Grey
			"error":   "160", // Dark Red
			"border":  "105", // Dark Blue
		},
		"light": {
			"primary": "135", // Light Purple
			"accent":  "33",  // Blue
			"muted":   "248", // Light Grey
			"error":   "210", // Light Red
			"border":  "135", // Light Purple
		},
		"monochrome": {
			"primary": "255", // Bright White
			"accent":  "252", // White
			"muted":   "241", // Medium Grey
			"error":   "250", // Grey
			"border":  "245", // Light Grey
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Accent = theme["accent"]
	c.Theme.Muted = theme["muted"]
	c.Theme.Error = theme["error"]
	c.Theme.Border = theme["border"]
}

// fillTheme sets every color the user left empty from the named theme.
func (c *Config) fillTheme() {
	if c.Theme.Name == "" {
		c.Theme.Name = "default"
	}
	theme := GetTheme(c.Theme.Name)
	for _, f := range []struct {
		field *string
		key   string
	}{
		{&c.Theme.Primary, "primary"},
		{&c.Theme.Accent, "accent"},
		{&c.Theme.Muted, "muted"},
		{&c.Theme.Error, "error"},
		{&c.Theme.Border, "border"},
	} {
		if *f.field == "" {
			*f.field = theme[f.key]
		}
	}
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
