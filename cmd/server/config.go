package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slavic-nlp/hunmorph"
)

// config is the server configuration, loadable from a YAML file with
// environment-variable overrides.
type config struct {
	Addr       string        `yaml:"addr"`
	Dictionary dictionaryCfg `yaml:"dictionary"`
	Logging    loggingCfg    `yaml:"logging"`
	CORS       corsCfg       `yaml:"cors"`
}

type dictionaryCfg struct {
	Basenames         []string `yaml:"basenames"`
	SearchPaths       []string `yaml:"searchPaths"`
	DarwinSearchPaths []string `yaml:"darwinSearchPaths"`
}

type loggingCfg struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type corsCfg struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

func defaultServerConfig() *config {
	lib := hunmorph.DefaultConfig()
	return &config{
		Addr: ":8080",
		Dictionary: dictionaryCfg{
			Basenames:         lib.Basenames,
			SearchPaths:       lib.SearchPaths,
			DarwinSearchPaths: lib.DarwinSearchPaths,
		},
		Logging: loggingCfg{Level: "info", Format: "text"},
		CORS:    corsCfg{AllowedOrigins: []string{"*"}},
	}
}

// loadConfig reads a YAML config file (if path is non-empty) on top of the
// defaults, then applies environment overrides.
func loadConfig(path string) (*config, error) {
	cfg := defaultServerConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if v := os.Getenv("HUNMORPH_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("HUNMORPH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return cfg, nil
}

// analyzerConfig converts the dictionary section to the library's Config.
func (c *config) analyzerConfig() hunmorph.Config {
	return hunmorph.Config{
		Basenames:         c.Dictionary.Basenames,
		SearchPaths:       c.Dictionary.SearchPaths,
		DarwinSearchPaths: c.Dictionary.DarwinSearchPaths,
	}
}
