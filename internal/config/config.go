package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// PromptConfig holds the fmt templates sent to the model. Every template takes
// exactly one %s: the utterance, or the location text for PlaceCategory.
type PromptConfig struct {
	ItemIntent         string `toml:"item_intent"`
	ScheduleIntent     string `toml:"schedule_intent"`
	ItemExtraction     string `toml:"item_extraction"`
	ScheduleExtraction string `toml:"schedule_extraction"`
	PlaceCategory      string `toml:"place_category"`
}

type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	ChatModel string `toml:"chat_model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
}

type RetryConfig struct {
	DelaySeconds int `toml:"delay_seconds"`
	MaxRetries   int `toml:"max_retries"` // 0 or 1; larger values are capped at 1
}

type ChatConfig struct {
	Memory      bool   `toml:"memory"`
	HistoryFile string `toml:"history_file"`
}

type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Retry   RetryConfig   `toml:"retry"`
	Chat    ChatConfig    `toml:"chat"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Prompts PromptConfig  `toml:"prompts"`
}

// Default returns the configuration used when no file is present: a local
// Ollama serving the fine-tuned intent model. BaseURL stays empty so that
// switching the provider reaches the hosted API; the ollama client falls back
// to localhost itself.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "gemma3_intent:latest",
			ChatModel: "gemma3_elderly",
		},
		Retry: RetryConfig{
			DelaySeconds: 60,
			MaxRetries:   1,
		},
		Chat: ChatConfig{
			HistoryFile: "chat_history.json",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Prompts: DefaultPrompts(),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notekeeper"
	}
	return filepath.Join(home, ".notekeeper")
}

// Load reads a TOML file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when they are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_CHAT_MODEL"); v != "" {
		c.LLM.ChatModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("NOTEKEEPER_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("NOTEKEEPER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("NOTEKEEPER_MEMORY")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid NOTEKEEPER_MEMORY %q: %w", v, err)
		}
		c.Chat.Memory = b
	}
	return nil
}

// RetryDelay is the fixed wait before retrying a rate-limited model call.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Retry.DelaySeconds) * time.Second
}

// HistoryPath resolves the conversation history file against the data dir.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.Chat.HistoryFile) {
		return c.Chat.HistoryFile
	}
	return filepath.Join(c.Storage.DataDir, c.Chat.HistoryFile)
}

// ChatModelName falls back to the intent model when no chat model is set.
func (c *Config) ChatModelName() string {
	if c.LLM.ChatModel != "" {
		return c.LLM.ChatModel
	}
	return c.LLM.Model
}
