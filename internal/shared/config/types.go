package config

import (
	"fmt"
	"strings"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host" validate:"required"`
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	Mode           string   `mapstructure:"mode" validate:"oneof=debug release test"`
	APIPrefix      string   `mapstructure:"api_prefix" validate:"required,startswith=/"`
	ServiceName    string   `mapstructure:"service_name" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	WebUI          bool     `mapstructure:"web_ui"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// NormalizedAPIPrefix returns the prefix without a trailing slash.
func (s *ServerConfig) NormalizedAPIPrefix() string {
	p := strings.TrimRight(s.APIPrefix, "/")
	if p == "" {
		return "/api"
	}
	return p
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	Path            string `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string `mapstructure:"host" validate:"required_if=Driver mysql"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required_if=Driver mysql"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"min=0"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"min=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"min=0"`
}

// GetDSN builds the driver-specific data source name.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == DriverMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
	// Foreign keys are off by default in SQLite; comment cascade depends on them.
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", d.Path)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel" validate:"required_if=Enabled true"`

	// RateLimit is the per-IP request budget per minute on the API; 0 disables it.
	RateLimit int `mapstructure:"rate_limit" validate:"min=0"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type EmailConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	SMTPHost      string `mapstructure:"smtp_host"`
	SMTPPort      int    `mapstructure:"smtp_port"`
	SMTPUser      string `mapstructure:"smtp_user"`
	SMTPPassword  string `mapstructure:"smtp_password"`
	FromAddress   string `mapstructure:"from_address" validate:"required_if=Enabled true"`
	FromName      string `mapstructure:"from_name"`
	NotifyAddress string `mapstructure:"notify_address" validate:"required_if=Enabled true"`
}
