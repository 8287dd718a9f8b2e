package storage

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/alexanderramin/tally/internal/domain"
)

// DefaultDonePrefix marks completed items in commit messages.
const DefaultDonePrefix = "done:"

// Config is the per-project .tally/config.toml.
type Config struct {
	Preferences Preferences `toml:"preferences"`
	Git         GitConfig   `toml:"git"`
}

type Preferences struct {
	AutoCommitTodo    bool   `toml:"auto_commit_todo"`
	AutoCompleteTasks bool   `toml:"auto_complete_tasks"`
	Editor            string `toml:"editor,omitempty"`
	DefaultPriority   string `toml:"default_priority,omitempty"`
}

type GitConfig struct {
	DonePrefix string `toml:"done_prefix"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{Git: GitConfig{DonePrefix: DefaultDonePrefix}}
}

// configKey binds a dotted key to typed accessors on Config.
type configKey struct {
	get func(*Config) string
	set func(*Config, string) error
}

var configKeys = map[string]configKey{
	"preferences.auto_commit_todo": {
		get: func(c *Config) string { return strconv.FormatBool(c.Preferences.AutoCommitTodo) },
		set: func(c *Config, v string) error { return setBool(&c.Preferences.AutoCommitTodo, v) },
	},
	"preferences.auto_complete_tasks": {
		get: func(c *Config) string { return strconv.FormatBool(c.Preferences.AutoCompleteTasks) },
		set: func(c *Config, v string) error { return setBool(&c.Preferences.AutoCompleteTasks, v) },
	},
	"preferences.editor": {
		get: func(c *Config) string { return c.Preferences.Editor },
		set: func(c *Config, v string) error {
			c.Preferences.Editor = v
			return nil
		},
	},
	"preferences.default_priority": {
		get: func(c *Config) string { return c.Preferences.DefaultPriority },
		set: func(c *Config, v string) error {
			if v == "" {
				c.Preferences.DefaultPriority = ""
				return nil
			}
			p, err := domain.ParsePriority(v)
			if err != nil {
				return err
			}
			c.Preferences.DefaultPriority = string(p)
			return nil
		},
	},
	"git.done_prefix": {
		get: func(c *Config) string { return c.Git.DonePrefix },
		set: func(c *Config, v string) error {
			if v == "" {
				return fmt.Errorf("git.done_prefix cannot be empty")
			}
			c.Git.DonePrefix = v
			return nil
		},
	},
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	*dst = b
	return nil
}

// ConfigKeys lists every supported dotted key in sorted order.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConfigStorage reads and writes .tally/config.toml.
type ConfigStorage struct {
	path   string
	config Config
}

// OpenConfigStorage loads path, falling back to defaults when it is absent.
func OpenConfigStorage(path string) (*ConfigStorage, error) {
	s := &ConfigStorage{path: path, config: DefaultConfig()}

	data, ok, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s, nil
	}
	if _, err := toml.Decode(string(data), &s.config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if s.config.Git.DonePrefix == "" {
		s.config.Git.DonePrefix = DefaultDonePrefix
	}
	return s, nil
}

func (s *ConfigStorage) Config() Config { return s.config }

func (s *ConfigStorage) Path() string { return s.path }

func (s *ConfigStorage) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.config); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFile(s.path, buf.Bytes())
}

// Get returns the value of a dotted key.
func (s *ConfigStorage) Get(key string) (string, error) {
	k, ok := configKeys[key]
	if !ok {
		return "", &KeyNotFoundError{Key: key}
	}
	return k.get(&s.config), nil
}

// Set validates and stores value under key, then saves the file.
func (s *ConfigStorage) Set(key, value string) error {
	k, ok := configKeys[key]
	if !ok {
		return &KeyNotFoundError{Key: key}
	}
	if err := k.set(&s.config, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return s.Save()
}

// Flatten returns every key with its current value.
func (s *ConfigStorage) Flatten() map[string]string {
	out := make(map[string]string, len(configKeys))
	for name, k := range configKeys {
		out[name] = k.get(&s.config)
	}
	return out
}
