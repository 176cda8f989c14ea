package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config 保存进程级配置（仅使用配置文件或内置默认值）。
// 字段提供开发友好的默认值；生产环境请在 config.yaml 中覆盖。
type Config struct {
	Env      string
	HTTPAddr string
	CORS     CORSConfig
	Limits   LimitConfig
	Security SecurityConfig
}

type CORSConfig struct {
	// 允许的来源；包含 "*" 时放行任意来源
	AllowedOrigins []string
	// 是否允许携带凭据（Cookie / Authorization）
	AllowCredentials bool
}

// Allowed 判断来源是否在允许清单内。
func (c CORSConfig) Allowed(origin string) bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

type LimitConfig struct {
	// 限流时间窗口（默认 15m）
	Window time.Duration
	// 读接口每窗口的请求上限
	GeneralMax int
	// 写接口（创建/更新/删除）每窗口的请求上限
	StrictMax int
}

type SecurityConfig struct {
	HSTS struct {
		Enabled           bool
		MaxAgeSeconds     int
		IncludeSubdomains bool
	}
}

// Load 生成配置：先使用内置默认值，再用同目录的配置文件（config.yaml/yml/json）覆盖。
func Load() Config {
	// 1) 默认值（本地开发可直接运行）
	cfg := Config{
		Env:      "dev",
		HTTPAddr: ":8080",
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:3001"},
			AllowCredentials: true,
		},
		Limits: LimitConfig{Window: 15 * time.Minute, GeneralMax: 100, StrictMax: 20},
		Security: func() SecurityConfig {
			var s SecurityConfig
			s.HSTS.Enabled = true
			s.HSTS.MaxAgeSeconds = 31536000
			s.HSTS.IncludeSubdomains = true
			return s
		}(),
	}

	// 2) 配置文件覆盖（若存在）
	if path := FirstExisting("config.yaml", "config.yml", "config.json"); path != "" {
		_ = loadFromFile(path, &cfg)
	}
	return cfg
}

// 配置文件格式：YAML 或 JSON。仅非零值会覆盖现有字段。
func loadFromFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var fm fileModel
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else if ext == ".json" || ext == "" {
		if err := json.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else {
		return errors.New("unsupported config file format")
	}
	fm.apply(cfg)
	return nil
}

// --- 配置文件模型与合并逻辑 ---

type fileModel struct {
	Env      string        `yaml:"env" json:"env"`
	HTTPAddr string        `yaml:"http_addr" json:"http_addr"`
	CORS     *fileCORS     `yaml:"cors" json:"cors"`
	Limits   *fileLimits   `yaml:"limits" json:"limits"`
	Security *fileSecurity `yaml:"security" json:"security"`
}

type fileCORS struct {
	AllowedOrigins   []string `yaml:"allowed_origins" json:"allowed_origins"`
	AllowCredentials *bool    `yaml:"allow_credentials" json:"allow_credentials"`
}

type fileLimits struct {
	Window     string `yaml:"window" json:"window"`
	GeneralMax int    `yaml:"general_max" json:"general_max"`
	StrictMax  int    `yaml:"strict_max" json:"strict_max"`
}

type fileSecurity struct {
	HSTS *struct {
		Enabled           *bool `yaml:"enabled" json:"enabled"`
		MaxAgeSeconds     int   `yaml:"max_age_seconds" json:"max_age_seconds"`
		IncludeSubdomains *bool `yaml:"include_subdomains" json:"include_subdomains"`
	} `yaml:"hsts" json:"hsts"`
}

func (fm *fileModel) apply(cfg *Config) {
	if fm.Env != "" {
		cfg.Env = fm.Env
	}
	if fm.HTTPAddr != "" {
		cfg.HTTPAddr = fm.HTTPAddr
	}
	if fm.CORS != nil {
		if len(fm.CORS.AllowedOrigins) > 0 {
			cfg.CORS.AllowedOrigins = fm.CORS.AllowedOrigins
		}
		if fm.CORS.AllowCredentials != nil {
			cfg.CORS.AllowCredentials = *fm.CORS.AllowCredentials
		}
	}
	if fm.Limits != nil {
		if d, err := time.ParseDuration(fm.Limits.Window); err == nil && d > 0 {
			cfg.Limits.Window = d
		}
		if fm.Limits.GeneralMax > 0 {
			cfg.Limits.GeneralMax = fm.Limits.GeneralMax
		}
		if fm.Limits.StrictMax > 0 {
			cfg.Limits.StrictMax = fm.Limits.StrictMax
		}
	}
	if fm.Security != nil && fm.Security.HSTS != nil {
		if fm.Security.HSTS.Enabled != nil {
			cfg.Security.HSTS.Enabled = *fm.Security.HSTS.Enabled
		}
		if fm.Security.HSTS.MaxAgeSeconds > 0 {
			cfg.Security.HSTS.MaxAgeSeconds = fm.Security.HSTS.MaxAgeSeconds
		}
		if fm.Security.HSTS.IncludeSubdomains != nil {
			cfg.Security.HSTS.IncludeSubdomains = *fm.Security.HSTS.IncludeSubdomains
		}
	}
}

// FirstExisting 返回第一个存在的文件路径，均不存在时返回空串。
func FirstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
