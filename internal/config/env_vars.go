package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	portKey     = "port"
	appNameKey  = "app_name"
	envKey      = "env"
	logLevelKey = "log_level"
)

var defaults = map[string]any{
	portKey:     "8080",
	appNameKey:  "School Insights",
	envKey:      "DEV",
	logLevelKey: "info",

	allowedOriginsKey: "*",

	tokenSecretKey:     "",
	tokenExpiryKey:     2 * time.Hour,
	adminUsernameKey:   "admin",
	adminPasswordKey:   "admin123",
	adminRoleKey:       "admin",
	credentialsFileKey: "",

	dataSourceKey:  DataSourceCSV,
	dataFolderKey:  "./data",
	s3BucketKey:    "",
	s3PrefixKey:    "",
	s3RegionKey:    "us-east-1",
	s3EndpointKey:  "",
	s3AccessKeyKey: "",
	s3SecretKeyKey: "",
	dbDriverKey:    "postgres",
	dbDSNKey:       "",

	modelTreesKey: 100,
	modelSeedKey:  42,
}

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.v.GetString(portKey)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(appNameKey)
}

func (e EnvVars) GetEnv() string {
	env := e.v.GetString(envKey)
	if env == "" {
		return "DEV"
	}
	return strings.ToUpper(env)
}

func (e EnvVars) GetLogLevel() string {
	return e.v.GetString(logLevelKey)
}
