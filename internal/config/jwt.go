package config

import (
	"log"
	"os"
	"sync"
)

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

var (
	jwtConfig *JWTConfig
	jwtOnce   sync.Once
)

func LoadJWTConfig() *JWTConfig {
	jwtOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "resumify-dev-secret"
			log.Printf("Warning: JWT_SECRET not set, using development secret")
		}
		jwtConfig = &JWTConfig{
			Secret:          secret,
			ExpirationHours: intEnv("JWT_EXPIRATION_HOURS", 72),
		}
	})
	return jwtConfig
}
