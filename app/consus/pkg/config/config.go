package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Search SearchConfig `yaml:"search"`
	AI     AIConfig     `yaml:"ai"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"` // time.ParseDuration 格式
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider   string           `yaml:"provider"`
	Timeout    int              `yaml:"timeout"` // 单次 provider 调用超时（秒）
	DuckDuckGo DuckDuckGoConfig `yaml:"duckduckgo"`
	Tavily     TavilyConfig     `yaml:"tavily"`
	SearXNG    SearXNGConfig    `yaml:"searxng"`
}

// DuckDuckGoConfig DuckDuckGo 配置
type DuckDuckGoConfig struct {
	HTMLURL   string `yaml:"html_url"`
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
}

// AIConfig AI 问答相关配置，兼容 OpenAI 协议
type AIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout int    `yaml:"timeout"` // 秒
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default 返回内置默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig 从指定路径加载配置，文件不存在时使用默认配置
// 文件内容中的 ${VAR} 会先按环境变量展开
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.Timeout == "" {
		c.Server.Timeout = "60s"
	}
	if c.Search.Provider == "" {
		c.Search.Provider = "duckduckgo"
	}
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = 15
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.AI.Model == "" {
		c.AI.Model = "openai/gpt-4o-mini"
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// ServerTimeout 解析服务端请求超时，格式错误时返回 0
func (c *Config) ServerTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// SearchTimeout 单次 provider 调用超时
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.Timeout) * time.Second
}

// AITimeout 单次 AI 调用超时
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.Timeout) * time.Second
}
