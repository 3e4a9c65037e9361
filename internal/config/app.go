package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name           string
	Env            string
	Port           string
	BaseURL        string
	AllowedOrigins string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "Resumify"
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8080"
		}
		origins := os.Getenv("APP_ALLOWED_ORIGINS")
		if origins == "" {
			origins = "*"
		}
		appConfig = &AppConfig{
			Name:           name,
			Env:            env,
			Port:           port,
			BaseURL:        os.Getenv("APP_URL"),
			AllowedOrigins: origins,
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
