package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	DataConfig
	ModelConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
	Data
	Model
}

// New builds a Config over v. A nil v falls back to defaults and the environment.
func New(v *viper.Viper) Config {
	if v == nil {
		v, _ = NewViper("")
	}
	return mainConfig{
		EnvVars:  EnvVars{v: v},
		Cors:     Cors{v: v},
		Security: Security{v: v},
		Data:     Data{v: v},
		Model:    Model{v: v},
	}
}

// NewViper returns a viper instance with every key defaulted and bound to its
// environment variable (key "token_secret" reads TOKEN_SECRET). A non-empty
// configFile is read on top of the defaults; environment and flags still win.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("[config NewViper] failed to read %s: %w", configFile, err)
		}
	}
	return v, nil
}

// Validate reports configuration that would make startup fail later on.
func Validate(c Config) error {
	switch c.GetDataSource() {
	case DataSourceCSV, DataSourceS3, DataSourceSQL:
	default:
		return fmt.Errorf("unknown data source %q", c.GetDataSource())
	}
	if c.GetDataSource() == DataSourceS3 && c.GetS3Bucket() == "" {
		return fmt.Errorf("%s is required when the data source is s3", s3BucketKey)
	}
	if c.GetDataSource() == DataSourceSQL && c.GetDBDSN() == "" {
		return fmt.Errorf("%s is required when the data source is sql", dbDSNKey)
	}
	if c.GetTokenExpiry() <= 0 {
		return fmt.Errorf("%s must be > 0", tokenExpiryKey)
	}
	if c.GetModelTrees() <= 0 {
		return fmt.Errorf("%s must be > 0", modelTreesKey)
	}
	return nil
}
