// Package config はアプリケーションの設定を読み込みます。
//
// 値は3段階で決まります。組み込みのデフォルト、CONFIG_FILEで指定した任意のYAMLファイル、
// そして最優先の環境変数です。
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config はブログサーバーの実行時設定全体です。
type Config struct {
	SecretKey     string        `yaml:"secret_key"`
	DBURI         string        `yaml:"db_uri"`
	Port          string        `yaml:"port"`
	CookieSecure  bool          `yaml:"cookie_secure"`
	RunMigrations bool          `yaml:"run_migrations"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	ContactWait   time.Duration `yaml:"contact_wait"`
	Mail          Mail          `yaml:"mail"`
	Redis         Redis         `yaml:"redis"`
}

// Mail はお問い合わせフォーム用のSMTP設定です。
type Mail struct {
	SenderEmail    string        `yaml:"sender_email"`
	SenderPassword string        `yaml:"sender_password"`
	SMTPHost       string        `yaml:"smtp_host"`
	SMTPPort       int           `yaml:"smtp_port"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Redis は任意のセッションストアのアドレスです。Hostが空の場合Redisは無効です。
type Redis struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
}

// Addr はhost:portを返します。Redisが未設定の場合は""です。
func (r Redis) Addr() string {
	if r.Host == "" {
		return ""
	}
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return r.Host + ":" + port
}

// Default は何も上書きされない場合の設定を返します。
func Default() *Config {
	return &Config{
		DBURI:       "sqlite://blog.db",
		Port:        "5002",
		LogLevel:    "info",
		LogFormat:   "text",
		ContactWait: 3 * time.Second,
		Mail: Mail{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 587,
			Timeout:  10 * time.Second,
		},
	}
}

// Load はデフォルト、CONFIG_FILE、環境変数から設定を構築します。
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		// 再起動するとセッションは無効になる
		slog.Warn("SECRET_KEY is not set; using a random per-process key")
		key, err := randomKey()
		if err != nil {
			return nil, err
		}
		cfg.SecretKey = key
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.SecretKey, "SECRET_KEY")
	setString(&cfg.DBURI, "DB_URI")
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.Mail.SenderEmail, "SENDER_EMAIL")
	setString(&cfg.Mail.SenderPassword, "SENDER_PASSWORD")
	setString(&cfg.Mail.SMTPHost, "SMTP_HOST")
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setString(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	if err := setBool(&cfg.CookieSecure, "COOKIE_SECURE"); err != nil {
		return err
	}
	if err := setBool(&cfg.RunMigrations, "RUN_MIGRATIONS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.ContactWait, "CONTACT_WAIT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Mail.Timeout, "SMTP_TIMEOUT"); err != nil {
		return err
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		cfg.Mail.SMTPPort = port
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func randomKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
