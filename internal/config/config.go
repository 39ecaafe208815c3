// Package config 统一配置管理
//
// 配置加载策略：
//  1. 从 .env 加载敏感信息（MONGO_URL、JWT_KEY）和 APP_ENV
//  2. 根据 APP_ENV 加载对应的 configs/{env}.yaml 配置文件
//  3. 环境变量可覆盖 YAML 配置
//
// MONGO_URL 和 JWT_KEY 缺失属于致命错误：进程不应开始对外服务。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Name string `yaml:"name"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env           Environment
	MongoURL      string
	DatabaseName  string
	JWTKey        string
	APIPort       string
	ClientOrigins []string
}

var configPaths = []string{
	"configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

var envPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"../../../.env",
}

// Load 加载配置
// 1. 加载 .env（敏感信息 + APP_ENV）
// 2. 根据 APP_ENV 加载 configs/{env}.yaml
// 3. 环境变量覆盖并验证必填项
func Load() (*Config, error) {
	// 加载 .env
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// 解析环境
	env := parseEnv(getEnv("APP_ENV", "dev"))

	// 加载 YAML 配置
	yamlCfg := loadYAMLConfig(env)

	cfg := &Config{
		Env:           env,
		MongoURL:      os.Getenv("MONGO_URL"),
		DatabaseName:  getEnv("DB_NAME", yamlCfg.Database.Name),
		JWTKey:        os.Getenv("JWT_KEY"),
		APIPort:       getEnv("PORT", yamlCfg.Server.Port),
		ClientOrigins: yamlCfg.CORS.Origins,
	}

	// CLIENT_ORIGIN 覆盖 YAML 的 CORS 白名单（逗号分隔）
	if origins := os.Getenv("CLIENT_ORIGIN"); origins != "" {
		cfg.ClientOrigins = splitOrigins(origins)
	}
	if len(cfg.ClientOrigins) == 0 {
		cfg.ClientOrigins = []string{"*"}
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("config: MONGO_URL is required")
	}
	if cfg.JWTKey == "" {
		return nil, fmt.Errorf("config: JWT_KEY is required")
	}

	return cfg, nil
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → common.yaml → {env}.yaml
func loadYAMLConfig(env Environment) *YAMLConfig {
	cfg := &YAMLConfig{
		Server:   ServerConfig{Port: "3000"},
		Database: DatabaseConfig{Name: "users_admin"},
	}

	for _, base := range configPaths {
		path := filepath.Join(base, "common.yaml")
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range configPaths {
		path := filepath.Join(base, filename)
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	return cfg
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func parseEnv(env string) Environment {
	switch strings.ToLower(env) {
	case "test":
		return EnvTest
	case "prod", "production":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsTest 是否为测试环境
func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}

// String 返回配置摘要（隐藏连接串密码）
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Mongo: %s, DB: %s, Port: %s}",
		c.Env, maskPassword(c.MongoURL), c.DatabaseName, c.APIPort)
}

// maskPassword 隐藏密码
func maskPassword(url string) string {
	re := regexp.MustCompile(`(://[^:/@]+:)([^@]+)(@)`)
	return re.ReplaceAllString(url, "${1}***${3}")
}
