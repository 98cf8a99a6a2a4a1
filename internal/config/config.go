package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPServer
	Store
	Mail
}

type HTTPServer struct {
	Port        string `env:"PORT" env-default:"8080"`
	TemplateDir string `env:"TEMPLATE_DIR" env-default:"web/templates"`
	StaticDir   string `env:"STATIC_DIR" env-default:"web/static"`
}

type Store struct {
	DBPath string `env:"DB_PATH" env-default:"blog.db"`
}

type Mail struct {
	SMTPHost  string `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	SMTPPort  string `env:"SMTP_PORT" env-default:"587"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	Recipient string `env:"CONTACT_RECIPIENT"`
}

// New loads configuration from the environment, optionally overlaid with a
// dotenv file. A missing env file is not an error; every field has a usable
// default except the mail credentials.
func New(envFile string) (*Config, error) {
	conf := &Config{}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Overload(envFile); err != nil {
				return nil, fmt.Errorf("godotenv.Overload: %v", err)
			}
		}
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %v", err)
	}

	return conf, nil
}
