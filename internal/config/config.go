package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Address          string        `env:"RUN_ADDRESS"       envDefault:"localhost:8080"`
	DataDir          string        `env:"DATA_DIR"          envDefault:"./data"`
	UploadDir        string        `env:"UPLOAD_DIR"        envDefault:"./uploads"`
	AdminEmail       string        `env:"ADMIN_EMAIL"       envDefault:""`
	AdminPassword    string        `env:"ADMIN_PASSWORD"    envDefault:""`
	AutosaveInterval time.Duration `env:"AUTOSAVE_INTERVAL" envDefault:"5m"`
	LogLvl           string        `env:"LOG_LVL"           envDefault:"info"`
}

func New() *Config {
	godotenv.Load()

	cfg := &Config{}

	env.Parse(cfg)

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.DataDir, "d", cfg.DataDir, "directory holding the collection files")
	flag.StringVar(&cfg.UploadDir, "u", cfg.UploadDir, "directory holding uploaded evidence files")
	flag.DurationVar(&cfg.AutosaveInterval, "s", cfg.AutosaveInterval, "autosave snapshot interval")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.Parse()

	return cfg
}
