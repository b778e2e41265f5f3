package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Checkout CheckoutConfig
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

// CheckoutConfig holds the checkout engine knobs: the accepted payment
// method labels, the seat grid dimensions used for label validation, and
// the tolerance for reconciling a client-computed total against the
// authoritative server total.
type CheckoutConfig struct {
	PaymentMethods []string
	SeatRows       string
	SeatColumns    int
	TotalTolerance float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAYMENT_METHODS", []string{"cash", "ewallet", "card"})
	viper.SetDefault("SEAT_ROWS", "ABCDEFGH")
	viper.SetDefault("SEAT_COLUMNS", 12)
	viper.SetDefault("TOTAL_TOLERANCE", 0.01)

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
		Checkout: CheckoutConfig{
			PaymentMethods: viper.GetStringSlice("PAYMENT_METHODS"),
			SeatRows:       viper.GetString("SEAT_ROWS"),
			SeatColumns:    viper.GetInt("SEAT_COLUMNS"),
			TotalTolerance: viper.GetFloat64("TOTAL_TOLERANCE"),
		},
	}

	return config, nil
}
