package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Datasets      Datasets      `mapstructure:",squash"`
	Model         Model         `mapstructure:",squash"`
	LLM           LLM           `mapstructure:",squash"`
	Session       Session       `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Redis         Redis         `mapstructure:",squash"`
	Reports       Reports       `mapstructure:",squash"`
	DatasetReload DatasetReload `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Datasets struct {
	CustomersPath string `mapstructure:"customers_csv"`
	BaselinePath  string `mapstructure:"baseline_csv"`
}

type Model struct {
	Path string `mapstructure:"model_path"`
}

type LLM struct {
	BaseURL string        `mapstructure:"llm_base_url"`
	Model   string        `mapstructure:"llm_model"`
	APIKey  string        `mapstructure:"llm_api_key"`
	Timeout time.Duration `mapstructure:"llm_timeout"`
}

type Session struct {
	Secret string        `mapstructure:"session_secret"`
	TTL    time.Duration `mapstructure:"session_ttl"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Reports struct {
	// Store aceita "postgres" ou "none"
	Store               string        `mapstructure:"reports_store"`
	NarrativeCache      bool          `mapstructure:"narrative_cache_enabled"`
	NarrativeCacheTTL   time.Duration `mapstructure:"narrative_cache_ttl"`
	HistoryDefaultLimit int           `mapstructure:"reports_history_limit"`
}

type DatasetReload struct {
	CronSchedule string `mapstructure:"dataset_reload_cron"`
	Enabled      bool   `mapstructure:"dataset_reload_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("CUSTOMERS_CSV", "data/home_data.csv")
	viper.SetDefault("BASELINE_CSV", "data/baseline_model.csv")
	viper.SetDefault("MODEL_PATH", "model/model.json")

	viper.SetDefault("LLM_BASE_URL", "https://integrate.api.nvidia.com/v1")
	viper.SetDefault("LLM_MODEL", "qwen/qwen3-235b-a22b")
	viper.SetDefault("LLM_API_KEY", "")
	viper.SetDefault("LLM_TIMEOUT", "60s")

	viper.SetDefault("SESSION_SECRET", "change_me_session_secret")
	viper.SetDefault("SESSION_TTL", "12h")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/churn?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("REPORTS_STORE", "none")
	viper.SetDefault("NARRATIVE_CACHE_ENABLED", false)
	viper.SetDefault("NARRATIVE_CACHE_TTL", "24h")
	viper.SetDefault("REPORTS_HISTORY_LIMIT", 20)

	viper.SetDefault("DATASET_RELOAD_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("DATASET_RELOAD_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("config: using environment only, viper could not read .env: ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// A credencial do endpoint original era NVIDIA_API_KEY
	if config.LLM.APIKey == "" {
		config.LLM.APIKey = os.Getenv("NVIDIA_API_KEY")
	}

	config.LLM.BaseURL = strings.TrimRight(config.LLM.BaseURL, "/")

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile procura um .env no diretório atual e nos diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("config: .env loaded from ", location)
			return
		}
	}

	logrus.Debug("config: no .env file found")
}
