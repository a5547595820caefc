package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	S3      S3Config      `mapstructure:"s3"`
	Cognito CognitoConfig `mapstructure:"cognito"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

// APIConfig points the client at the exercises/analysis backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"` // empty for real AWS
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// CognitoConfig identifies the user pool app client and where to cache the
// session tokens between runs.
type CognitoConfig struct {
	Region     string `mapstructure:"region"`
	ClientID   string `mapstructure:"client_id"`
	TokenCache string `mapstructure:"token_cache"`
}

// AuthConfig selects the identity provider. Provider is "cognito" or
// "local"; the JWT fields only matter for the local provider.
type AuthConfig struct {
	Provider      string        `mapstructure:"provider"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// api.base_url -> API_BASE_URL etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("api.base_url", "http://localhost:8000")
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("cognito.region", "us-east-1")
	viper.SetDefault("cognito.token_cache", ".repright_session.json")
	viper.SetDefault("auth.provider", "cognito")
	viper.SetDefault("auth.jwt_expiration", "1h")

	err = viper.ReadInConfig()
	// Missing config file is fine; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
