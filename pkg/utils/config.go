package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Wizard   WizardConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	// Secret verifies tokens issued by the external auth service; this
	// service never issues tokens itself.
	Secret string
}

// GatewayConfig selects where booking submissions go. Mode "local" serves the
// booking contract from this service's own Postgres; mode "remote" proxies a
// remote booking API.
type GatewayConfig struct {
	Mode           string
	BaseURL        string
	Token          string
	TimeoutSeconds int
}

type WizardConfig struct {
	SessionTTLMinutes int
}

const (
	GatewayModeLocal  = "local"
	GatewayModeRemote = "remote"
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "bus-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("GATEWAY_MODE", GatewayModeLocal)
	viper.SetDefault("GATEWAY_TIMEOUT_SECONDS", 15)
	viper.SetDefault("WIZARD_SESSION_TTL_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Gateway: GatewayConfig{
			Mode:           viper.GetString("GATEWAY_MODE"),
			BaseURL:        viper.GetString("GATEWAY_BASE_URL"),
			Token:          viper.GetString("GATEWAY_TOKEN"),
			TimeoutSeconds: viper.GetInt("GATEWAY_TIMEOUT_SECONDS"),
		},
		Wizard: WizardConfig{
			SessionTTLMinutes: viper.GetInt("WIZARD_SESSION_TTL_MINUTES"),
		},
	}

	return config, nil
}
