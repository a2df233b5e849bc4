package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/napryag/yoga_admin_bot/pkg/utils/errs"
	"gopkg.in/yaml.v3"
)

type Config struct {
	PostgreAddr string `yaml:"postgre_addr" validate:"required"`

	// Контент сайта
	ContentDir string `yaml:"content_dir" validate:"required"`
	PublicDir  string `yaml:"public_dir" validate:"required"`

	// Деплой
	SiteDir          string   `yaml:"site_dir" validate:"required"`
	BuildCmd         []string `yaml:"build_cmd" validate:"required,min=1"`
	RestartCmd       []string `yaml:"restart_cmd" validate:"required,min=1"`
	DeployTimeoutSec int      `yaml:"deploy_timeout_sec" validate:"required,gt=0"`

	// Админы и токены
	AdminIDs      []int64 `yaml:"admin_ids" validate:"required,min=1"`
	TokenTTLHours int     `yaml:"token_ttl_hours" validate:"required,gt=0"`

	BotToken    string
	TokenSecret string
}

// SlotsFile возвращает путь к available-slots.json.
func (c *Config) SlotsFile() string {
	return filepath.Join(c.ContentDir, "bookings", "available-slots.json")
}

func (c *Config) BookingsFile() string {
	return filepath.Join(c.ContentDir, "bookings", "bookings.json")
}

func (c *Config) PackagesFile() string {
	return filepath.Join(c.ContentDir, "packages", "packages.json")
}

func (c *Config) PostsDir() string {
	return filepath.Join(c.ContentDir, "posts")
}

func LoadConfig() (*Config, error) {
	path := filepath.Join("cmd/bot/etc", "app.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New("failed to read config file").Wrap(err)
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.New("failed to unmarshal YAML").Wrap(err)
	}

	// Validate
	if err = validator.New().Struct(cfg); err != nil {
		return nil, errs.New("config validation failed").Wrap(err)
	}

	// .env опционален: в проде переменные приходят из окружения.
	_ = godotenv.Load()
	cfg.BotToken = os.Getenv("TG_TOKEN")
	cfg.TokenSecret = os.Getenv("ADMIN_TOKEN_SECRET")

	if cfg.BotToken == "" {
		return nil, errs.New("TG_TOKEN is not set")
	}

	return &cfg, nil
}
