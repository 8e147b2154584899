package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	JungleScout JungleScoutConfig `yaml:"junglescout"`
	App         AppSpecific       `yaml:"app"`
}

// JungleScoutConfig — настройки клиента Jungle Scout API.
type JungleScoutConfig struct {
	APIKeyName  string `yaml:"api_key_name"` // Поддерживает ${VAR}
	APIKey      string `yaml:"api_key"`      // Поддерживает ${VAR}
	APIType     string `yaml:"api_type"`     // "junglescout" (по умолчанию) или "dynamo"
	Marketplace string `yaml:"marketplace"`  // Маркетплейс по умолчанию ("us", "uk", ...), опционально
	BaseURL     string `yaml:"base_url"`     // Базовый URL API
	Timeout     string `yaml:"timeout"`      // Timeout для HTTP запросов (например, "30s")
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *JungleScoutConfig) GetDefaults() JungleScoutConfig {
	result := *c // Копируем текущие значения

	if result.APIType == "" {
		result.APIType = "junglescout"
	}
	if result.BaseURL == "" {
		result.BaseURL = "https://developer.junglescout.com/api"
	}
	if result.Timeout == "" {
		result.Timeout = "30s"
	}

	return result
}

// TimeoutDuration парсит Timeout (после GetDefaults).
func (c *JungleScoutConfig) TimeoutDuration() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid junglescout.timeout format: %w", err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("junglescout.timeout must be positive")
	}
	return timeout, nil
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug     bool   `yaml:"debug"`
	LogPrefix string `yaml:"log_prefix"` // Префикс имени лог-файла (по умолчанию "junglescout")
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(rawBytes)
}

// Parse разбирает содержимое config.yaml.
//
// os.ExpandEnv заменяет ${VAR} или $VAR на значение из окружения,
// так ключи не хранятся в файле.
func Parse(rawBytes []byte) (*AppConfig, error) {
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	cfg.JungleScout = cfg.JungleScout.GetDefaults()
	if cfg.App.LogPrefix == "" {
		cfg.App.LogPrefix = "junglescout"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля.
// Допустимость api_type и marketplace проверяет сам клиент.
func (c *AppConfig) validate() error {
	if c.JungleScout.APIKeyName == "" {
		return fmt.Errorf("junglescout.api_key_name is required")
	}
	if c.JungleScout.APIKey == "" {
		return fmt.Errorf("junglescout.api_key is required")
	}
	if _, err := c.JungleScout.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}
