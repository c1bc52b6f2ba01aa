package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/vandycarlos/tiny-lang/parser/rdparser"
	"github.com/vandycarlos/tiny-lang/repl"
)

// DefaultConfigFile is read from the working directory when no other
// configuration file is named.
const DefaultConfigFile = ".tiny.yaml"

// Environment variables consulted by LoadConfig.
const (
	EnvDump     = "DUMP"
	EnvLogLevel = "TINY_LOG_LEVEL"
	EnvConfig   = "TINY_CONFIG"
)

// Config is the command configuration.
type Config struct {
	Dump     bool   `yaml:"dump"`
	Format   string `yaml:"format,omitempty"`
	LogLevel string `yaml:"log-level,omitempty"`
	MaxDepth int    `yaml:"max-depth"`

	Repl struct {
		Prompt  string `yaml:"prompt,omitempty"`
		History string `yaml:"history"`
	} `yaml:"repl,omitempty"`
}

// DefaultConfig returns the configuration used when no file or environment
// variable overrides it.
func DefaultConfig() *Config {
	c := &Config{
		Format:   formatTree,
		LogLevel: "info",
		MaxDepth: rdparser.DefaultMaxDepth,
	}
	c.Repl.Prompt = ">>> "
	c.Repl.History = repl.DefaultHistoryFile
	return c
}

// LoadConfig returns the default configuration updated by the YAML file at
// path and then by the environment.  When path is empty the file named by
// TINY_CONFIG is read, or DefaultConfigFile if it exists.
func LoadConfig(path string, getenv func(string) string) (*Config, error) {
	c := DefaultConfig()

	required := true
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultConfigFile
		required = false
	}
	if err := c.parseFile(path); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := c.applyEnv(getenv); err != nil {
		return nil, err
	}
	return c, nil
}

// parse configuration from YML file
func (c *Config) parseFile(fileName string) error {
	buf, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("failed to read configuration from %q: %w", fileName, err)
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return fmt.Errorf("failed to parse configuration from %q: %w", fileName, err)
	}
	return c.validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if s := getenv(EnvDump); s != "" {
		// values other than "1", "true" and the like turn dumping off
		dump, _ := strconv.ParseBool(s)
		c.Dump = dump
	}
	if s := getenv(EnvLogLevel); s != "" {
		c.LogLevel = s
	}
	return c.validate()
}

func (c *Config) validate() error {
	if _, err := renderer(c.Format); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max-depth cannot be negative: %d", c.MaxDepth)
	}
	return nil
}
