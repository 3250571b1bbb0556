package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Bot      BotConfig
	Panel    PanelConfig
	Payment  PaymentConfig
}

type ServerConfig struct {
	Port      int
	Env       string // "development", "production"
	PublicURL string // base URL payment processors redirect back to
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

type BotConfig struct {
	Token          string
	Username       string
	Channel        string // required-membership channel, e.g. "@sultanpanel"
	OpsChannelID   int64  // join/order/payment reports
	AgentChannelID int64  // approved agency requests
	AdminUsernames []string
}

// PanelConfig holds the SMM panel API credentials.
type PanelConfig struct {
	URL string
	Key string
}

type PaymentConfig struct {
	PerfectMoney PerfectMoneyConfig
	Payeer       PayeerConfig
}

type PerfectMoneyConfig struct {
	Account string
	Name    string
}

type PayeerConfig struct {
	Shop string
	Key  string
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BOT_CHANNEL", "@sultanpanel")

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetInt("APP_PORT"),
			Env:       viper.GetString("APP_ENV"),
			PublicURL: viper.GetString("APP_PUBLIC_URL"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Bot: BotConfig{
			Token:          viper.GetString("BOT_TOKEN"),
			Username:       viper.GetString("BOT_USERNAME"),
			Channel:        viper.GetString("BOT_CHANNEL"),
			OpsChannelID:   viper.GetInt64("BOT_OPS_CHANNEL_ID"),
			AgentChannelID: viper.GetInt64("BOT_AGENT_CHANNEL_ID"),
			AdminUsernames: viper.GetStringSlice("BOT_ADMIN_USERNAMES"),
		},
		Panel: PanelConfig{
			URL: viper.GetString("PANEL_API_URL"),
			Key: viper.GetString("PANEL_API_KEY"),
		},
		Payment: PaymentConfig{
			PerfectMoney: PerfectMoneyConfig{
				Account: viper.GetString("PM_PAYEE_ACCOUNT"),
				Name:    viper.GetString("PM_PAYEE_NAME"),
			},
			Payeer: PayeerConfig{
				Shop: viper.GetString("PAYEER_SHOP"),
				Key:  viper.GetString("PAYEER_KEY"),
			},
		},
	}

	if cfg.Database.Name == "" {
		log.Println("WARNING: DB_NAME is not set")
	}
	if cfg.Bot.Token == "" {
		log.Println("WARNING: BOT_TOKEN is not set")
	}
	if cfg.Panel.Key == "" {
		log.Println("WARNING: PANEL_API_KEY is not set")
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
