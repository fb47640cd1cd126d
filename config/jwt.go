package config

import (
	"errors"
	"os"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-this-in-production"

type JWTConfig struct {
	Secret     []byte
	Expiration time.Duration
}

func loadJWT() (JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = defaultJWTSecret
	}

	// tokens are valid for 14 days unless told otherwise
	expiration, err := getDuration("JWT_EXPIRATION", 14*24*time.Hour)
	if err != nil {
		return JWTConfig{}, err
	}
	if expiration <= 0 {
		return JWTConfig{}, errors.New("JWT_EXPIRATION must be positive")
	}

	return JWTConfig{
		Secret:     []byte(secret),
		Expiration: expiration,
	}, nil
}

// UsesDefaultSecret reports whether JWT_SECRET was left unset.
func (j JWTConfig) UsesDefaultSecret() bool {
	return string(j.Secret) == defaultJWTSecret
}
