package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type RemoteConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type SourceConfig struct {
	Backend         string        `yaml:"backend" validate:"required|in:local,remote,postgres"`
	DatasetID       string        `yaml:"datasetId"`
	QueryPath       string        `yaml:"queryPath"`
	Table           string        `yaml:"table"`
	Limit           int           `yaml:"limit" validate:"uint"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

type LocalStoreConfig struct {
	Driver   string `yaml:"driver" validate:"in:file,redis"`
	FilePath string `yaml:"filePath"`
	Compress bool   `yaml:"compress"`
	Key      string `yaml:"key"`
}

type AcknowledgmentConfig struct {
	Backend    string           `yaml:"backend" validate:"required|in:local,remote,postgres"`
	Collection string           `yaml:"collection"`
	Table      string           `yaml:"table"`
	User       string           `yaml:"user"`
	Local      LocalStoreConfig `yaml:"local"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ViewConfig struct {
	RemovalDelay time.Duration `yaml:"removalDelay"`
	NoticeTTL    time.Duration `yaml:"noticeTTL"`
}

type ExportConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"accessKey"`
	SecretKey string        `yaml:"secretKey"`
	UseSSL    bool          `yaml:"useSSL"`
	Bucket    string        `yaml:"bucket"`
	Prefix    string        `yaml:"prefix"`
	Interval  time.Duration `yaml:"interval"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName         string
	Debug           bool
	Path            string
	WebServer       Server               `yaml:"webServer"`
	Logger          LoggerConfig         `yaml:"logger"`
	Remote          RemoteConfig         `yaml:"remote"`
	Postgres        PostgresConfig       `yaml:"postgres"`
	Redis           RedisConfig          `yaml:"redis"`
	Source          SourceConfig         `yaml:"source"`
	Acknowledgments AcknowledgmentConfig `yaml:"acknowledgments"`
	View            ViewConfig           `yaml:"view"`
	Export          ExportConfig         `yaml:"export"`
	Cache           CacheConfig          `yaml:"cache"`
	Metrics         MetricsConfig        `yaml:"metrics"`
}

const (
	BackendLocal    = "local"
	BackendRemote   = "remote"
	BackendPostgres = "postgres"

	DriverFile  = "file"
	DriverRedis = "redis"
)
