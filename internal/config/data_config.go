package config

import "github.com/spf13/viper"

// Dataset sources
const (
	DataSourceCSV = "csv"
	DataSourceS3  = "s3"
	DataSourceSQL = "sql"
)

const (
	dataSourceKey  = "data_source"
	dataFolderKey  = "data_folder"
	s3BucketKey    = "s3_bucket"
	s3PrefixKey    = "s3_prefix"
	s3RegionKey    = "s3_region"
	s3EndpointKey  = "s3_endpoint"
	s3AccessKeyKey = "s3_access_key"
	s3SecretKeyKey = "s3_secret_key"
	dbDriverKey    = "db_driver"
	dbDSNKey       = "db_dsn"
)

type DataConfig interface {
	GetDataSource() string
	GetDataFolder() string
	GetS3Bucket() string
	GetS3Prefix() string
	GetS3Region() string
	GetS3Endpoint() string
	GetS3AccessKey() string
	GetS3SecretKey() string
	GetDBDriver() string
	GetDBDSN() string
}

type Data struct {
	v *viper.Viper
}

var _ DataConfig = Data{}

func (d Data) GetDataSource() string { return d.v.GetString(dataSourceKey) }
func (d Data) GetDataFolder() string { return d.v.GetString(dataFolderKey) }
func (d Data) GetS3Bucket() string   { return d.v.GetString(s3BucketKey) }
func (d Data) GetS3Prefix() string   { return d.v.GetString(s3PrefixKey) }
func (d Data) GetS3Region() string   { return d.v.GetString(s3RegionKey) }

// GetS3Endpoint returns a custom endpoint (e.g. MinIO). Empty uses the AWS default.
func (d Data) GetS3Endpoint() string  { return d.v.GetString(s3EndpointKey) }
func (d Data) GetS3AccessKey() string { return d.v.GetString(s3AccessKeyKey) }
func (d Data) GetS3SecretKey() string { return d.v.GetString(s3SecretKeyKey) }
func (d Data) GetDBDriver() string    { return d.v.GetString(dbDriverKey) }
func (d Data) GetDBDSN() string       { return d.v.GetString(dbDSNKey) }
