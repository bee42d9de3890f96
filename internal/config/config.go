package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Postgres   DBConfig
	Redis      RedisConfig
	S3         S3Config
	Moderation ModerationConfig
	Extractor  ExtractorConfig
	Notifier   NotifierConfig
	Packager   PackagerConfig
	Worker     WorkerConfig
	Upload     UploadConfig
	Logger     Logger
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type WorkerConfig struct {
	WorkerCount   int
	MaxCPUUsage   float64
	MaxAttempts   int
	QueueKey      string
	DequeueWait   time.Duration
	CheckInterval time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	UseTLS        bool
}

type S3Config struct {
	Endpoint   string
	Region     string
	AccessKey  string
	SecretKey  string
	Bucket     string
	VideoPath  string
	FramesPath string
}

type ModerationConfig struct {
	Region        string
	MinConfidence float64
	PollInterval  time.Duration
	MaxWait       time.Duration
}

type ExtractorConfig struct {
	FFmpegBin    string
	FramesPerSec int
}

type NotifierConfig struct {
	ServiceName     string
	MaxElapsedTime  time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
	RequestTimeout  time.Duration
}

type PackagerConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type UploadConfig struct {
	MaxSizeBytes int64
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
