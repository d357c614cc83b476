package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "TRIPGUIDE_CONFIG"

// KnowledgeBaseConfig locates the document set.
type KnowledgeBaseConfig struct {
	Path       string   `yaml:"path" toml:"path"`
	Watch      bool     `yaml:"watch" toml:"watch"`
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Type              string `yaml:"type" toml:"type"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk" toml:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences" toml:"overlap_sentences"`
}

// RetrievalConfig holds the empirically tuned ranking constants.
type RetrievalConfig struct {
	RelevanceThreshold float64 `yaml:"relevance_threshold" toml:"relevance_threshold"`
	TopK               int     `yaml:"top_k" toml:"top_k"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	KnowledgeBase KnowledgeBaseConfig `yaml:"knowledge_base" toml:"knowledge_base"`
	Chunker       ChunkerConfig       `yaml:"chunker" toml:"chunker"`
	Retrieval     RetrievalConfig     `yaml:"retrieval" toml:"retrieval"`
	Log           LogConfig           `yaml:"log" toml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Files ending in .toml are parsed as TOML, everything else as YAML.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault resolves the config path from $TRIPGUIDE_CONFIG, then
// ./config.yaml, then ~/.config/tripguide/config.yaml. If none exists, it
// writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		cfg, err := Load(p)
		return cfg, p, err
	}
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects settings the retriever cannot honour.
func (c *AppConfig) Validate() error {
	if c.Retrieval.RelevanceThreshold < 0 || c.Retrieval.RelevanceThreshold >= 1 {
		return fmt.Errorf("retrieval.relevance_threshold must be in [0,1), got %v", c.Retrieval.RelevanceThreshold)
	}
	if c.Retrieval.TopK < 0 {
		return fmt.Errorf("retrieval.top_k must be >= 0, got %d", c.Retrieval.TopK)
	}
	switch c.Chunker.Type {
	case "paragraph", "sentence", "":
	default:
		return fmt.Errorf("unknown chunker: %s", c.Chunker.Type)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tripguide", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		KnowledgeBase: KnowledgeBaseConfig{Path: "knowledge"},
		Chunker:       ChunkerConfig{Type: "paragraph", SentencesPerChunk: 5, OverlapSentences: 1},
		Retrieval:     RetrievalConfig{RelevanceThreshold: 0.05, TopK: 4},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.KnowledgeBase.Path == "" {
		cfg.KnowledgeBase.Path = "knowledge"
	}
	if cfg.Chunker.Type == "" {
		cfg.Chunker.Type = "paragraph"
	}
	if cfg.Chunker.SentencesPerChunk == 0 {
		cfg.Chunker.SentencesPerChunk = 5
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 4
	}
}
