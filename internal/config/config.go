package config

import (
	"github.com/cloudtasker/state-converger/internal/log"
)

type Config struct {
	Settings SettingsConfig `mapstructure:"settings"`
	Platform PlatformConfig `mapstructure:"platform"`
	Task     *TaskConfig    `mapstructure:"task" validate:"required"`
}

type SettingsConfig struct {
	LogLevel     log.Level  `mapstructure:"log_level"`
	LogFormat    log.Format `mapstructure:"log_format"`
	ReporterType string     `mapstructure:"reporter" validate:"omitempty,oneof=text json"`
	APIRPS       int        `mapstructure:"api_rps" validate:"omitempty,min=1,max=100"`
}

type PlatformConfig struct {
	GCP        *GCPConfig  `mapstructure:"gcp,omitempty"`
	Kubernetes *KubeConfig `mapstructure:"kubernetes,omitempty"`
}

type GCPConfig struct {
	ProjectID       string `mapstructure:"project_id" validate:"required"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type KubeConfig struct {
	Kubeconfig string `mapstructure:"kubeconfig"`
	Context    string `mapstructure:"context"`
	Namespace  string `mapstructure:"namespace"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			ReporterType: "text",
			APIRPS:       20,
		},
		Task: &TaskConfig{},
	}
}
