package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// AuthConfig holds authentication configuration for the application
type AuthConfig struct {
	JWTSecret         string `yaml:"jwt_secret" json:"jwt_secret"`
	TokenTTLMinutes   int    `yaml:"token_ttl_minutes" json:"token_ttl_minutes"`
	RefreshTTLHours   int    `yaml:"refresh_ttl_hours" json:"refresh_ttl_hours"`
	AdminUsername     string `yaml:"admin_username" json:"admin_username"`
	AdminPasswordHash string `yaml:"admin_password_hash" json:"admin_password_hash"`
}

// LoadAuthConfig loads and validates authentication configuration
func LoadAuthConfig(configPath string) (*AuthConfig, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("auth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setAuthDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults and environment variables
		} else {
			return nil, fmt.Errorf("error reading auth config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var config AuthConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling auth config: %w", err)
	}

	// Environment variables take precedence for sensitive values
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.JWTSecret = jwtSecret
	}
	if adminUsername := os.Getenv("ADMIN_USERNAME"); adminUsername != "" {
		config.AdminUsername = adminUsername
	}
	if adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH"); adminPasswordHash != "" {
		config.AdminPasswordHash = adminPasswordHash
	}

	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("auth config validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.AdminUsername == "" {
		return fmt.Errorf("admin username is required")
	}
	if c.AdminPasswordHash == "" {
		return fmt.Errorf("admin password hash is required, plaintext admin passwords are not supported")
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	if c.RefreshTTLHours <= 0 {
		return fmt.Errorf("refresh TTL must be positive")
	}
	return nil
}

// TokenTTL returns the access token lifetime
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh token lifetime
func (c *AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLHours) * time.Hour
}

// setAuthDefaults sets default values for auth configuration
func setAuthDefaults(v *viper.Viper) {
	v.SetDefault("token_ttl_minutes", 60)
	v.SetDefault("refresh_ttl_hours", 720)
	v.SetDefault("admin_username", "admin")
	// No default JWT secret or admin password hash - must be provided
}
