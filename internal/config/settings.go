package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultDaemonAddress = "127.0.0.1:7707"

const (
	defaultSearchResults    = 10
	defaultContextResults   = 3
	defaultContextSentences = 2
	defaultCursorThreshold  = 20
)

type Config struct {
	Daemon  DaemonConfig  `toml:"daemon"`
	Logging LoggingConfig `toml:"logging"`
	Search  SearchConfig  `toml:"search"`
	UI      UIConfig      `toml:"ui"`
}

type DaemonConfig struct {
	Address string `toml:"address"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type SearchConfig struct {
	Results          int `toml:"results"`
	ContextResults   int `toml:"context_results"`
	ContextSentences int `toml:"context_sentences"`
	CursorThreshold  int `toml:"cursor_threshold"`
}

type UIConfig struct {
	Theme string `toml:"theme"`
}

func Default() Config {
	return Config{
		Daemon:  DaemonConfig{Address: defaultDaemonAddress},
		Logging: LoggingConfig{Level: "info"},
		Search: SearchConfig{
			Results:          defaultSearchResults,
			ContextResults:   defaultContextResults,
			ContextSentences: defaultContextSentences,
			CursorThreshold:  defaultCursorThreshold,
		},
		UI: UIConfig{Theme: "dark"},
	}
}

// Load reads the config file, tolerating a missing or empty file by
// returning defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func (c Config) DaemonAddress() string {
	addr := strings.TrimSpace(c.Daemon.Address)
	if addr == "" {
		return defaultDaemonAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultDaemonAddress
	}
	return addr
}

func (c Config) DaemonBaseURL() string {
	return "http://" + c.DaemonAddress()
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) SearchResults() int {
	if c.Search.Results <= 0 {
		return defaultSearchResults
	}
	return c.Search.Results
}

func (c Config) ContextResults() int {
	if c.Search.ContextResults <= 0 {
		return defaultContextResults
	}
	return c.Search.ContextResults
}

func (c Config) ContextSentences() int {
	if c.Search.ContextSentences <= 0 {
		return defaultContextSentences
	}
	return c.Search.ContextSentences
}

func (c Config) CursorThreshold() int {
	if c.Search.CursorThreshold <= 0 {
		return defaultCursorThreshold
	}
	return c.Search.CursorThreshold
}

func (c Config) DarkTheme() bool {
	return strings.ToLower(strings.TrimSpace(c.UI.Theme)) != "light"
}
