package config

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Порт HTTPS-листенера не настраивается.
const ListenAddr = ":443"

const (
	ConfigPathEnv    = "SYNTH_MOD_BACKEND_CONFIG"
	DataDirEnv       = "SYNTH_MOD_BACKEND_DATA"
	FullchainPathEnv = "SYNTH_MOD_BACKEND_FULLCHAIN"
	PrivkeyPathEnv   = "SYNTH_MOD_BACKEND_PRIVKEY"

	defaultLogLevel = "info"
	dotEnvFile      = ".env"
)

type Config struct {
	DataDir         string `yaml:"data_dir" json:"data_dir" env:"SYNTH_MOD_BACKEND_DATA"`
	FullchainPath   string `yaml:"fullchain_path" json:"fullchain_path" env:"SYNTH_MOD_BACKEND_FULLCHAIN"`
	PrivkeyPath     string `yaml:"privkey_path" json:"privkey_path" env:"SYNTH_MOD_BACKEND_PRIVKEY"`
	OpsAddr         string `yaml:"ops_addr" json:"ops_addr" env:"SYNTH_MOD_BACKEND_OPS_ADDR"`
	LogLevel        string `yaml:"log_level" json:"log_level" env:"SYNTH_MOD_BACKEND_LOG_LEVEL"`
	UniqueFilenames bool   `yaml:"unique_filenames" json:"unique_filenames" env:"SYNTH_MOD_BACKEND_UNIQUE_FILENAMES"`
}

// ConfigError — фатальная ошибка конфигурации, процесс завершается с ненулевым кодом.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Load читает YAML-конфигурацию (если задан SYNTH_MOD_BACKEND_CONFIG), подгружает .env,
// применяет ENV-переопределения и возвращает актуальную структуру без валидации.
func Load() (*Config, error) {
	var c Config

	if path := strings.TrimSpace(os.Getenv(ConfigPathEnv)); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Msg: fmt.Sprintf("Config file '%s' is not readable", path), Err: err}
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, &ConfigError{Msg: fmt.Sprintf("Config file '%s' is not valid YAML", path), Err: err}
		}
	}

	// .env не перекрывает уже выставленные переменные окружения.
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigError{Msg: "failed to load .env", Err: err}
	}

	// ENV override
	if err := env.Parse(&c); err != nil {
		return nil, &ConfigError{Msg: "failed to parse environment", Err: err}
	}

	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaultLogLevel
	}

	return &c, nil
}

// Validate проверяет, что каталог данных, сертификат и ключ заданы и существуют.
// Каталог данных сервис не создаёт.
func (c *Config) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{DataDirEnv, c.DataDir},
		{FullchainPathEnv, c.FullchainPath},
		{PrivkeyPathEnv, c.PrivkeyPath},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigError{Msg: fmt.Sprintf("%s environment variable not set", r.env)}
		}
	}

	info, err := os.Stat(c.DataDir)
	if err != nil {
		return &ConfigError{Msg: fmt.Sprintf("Data directory '%s' does not exist", c.DataDir), Err: err}
	}
	if !info.IsDir() {
		return &ConfigError{Msg: fmt.Sprintf("Data directory '%s' is not a directory", c.DataDir)}
	}

	if _, err := os.Stat(c.FullchainPath); err != nil {
		return &ConfigError{Msg: fmt.Sprintf("Fullchain path '%s' does not exist", c.FullchainPath), Err: err}
	}
	if _, err := os.Stat(c.PrivkeyPath); err != nil {
		return &ConfigError{Msg: fmt.Sprintf("Privkey path '%s' does not exist", c.PrivkeyPath), Err: err}
	}

	return nil
}
