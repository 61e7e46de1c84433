package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required"`
	Mode        string `koanf:"mode" validate:"required"`
	Concurrency int    `koanf:"concurrency"`
	BodyLimit   int    `koanf:"body_limit"`
	AppName     string `koanf:"app_name" validate:"required"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

// Module tags log lines and error envelopes with the feature they came from.
type Module string

const (
	ModuleSetting     Module = "setting"
	ModuleServer      Module = "server"
	ModuleModelServer Module = "model_server"
	ModuleDatabase    Module = "database"
	ModuleMilvus      Module = "milvus"
	ModuleOpenAI      Module = "openai"
	ModuleS3          Module = "s3"
	ModuleCors        Module = "cors"
	ModuleUpload      Module = "upload"
	ModuleIngest      Module = "ingest"
	ModuleRetriever   Module = "retriever"
	ModuleGenerate    Module = "generate"
	ModuleTranscribe  Module = "transcribe"
	ModuleQuiz        Module = "quiz"
	ModuleRoom        Module = "room"
	ModuleGrading     Module = "grading"
)

type databaseConfig struct {
	Host         string   `koanf:"host" validate:"required"`
	Port         int      `koanf:"port" validate:"required"`
	User         string   `koanf:"user" validate:"required"`
	Password     string   `koanf:"password"`
	Name         string   `koanf:"name" validate:"required"`
	Replicas     []string `koanf:"replicas"`
	MaxIdleConns int      `koanf:"max_idle_conns"`
	MaxOpenConns int      `koanf:"max_open_conns"`
	MaxLifetime  int      `koanf:"max_lifetime"`
}

type openaiConfig struct {
	Key            string `koanf:"key"`
	EmbeddingModel string `koanf:"embedding_model" validate:"required"`
}

// modelServerConfig points at the self-hosted model server that exposes
// /generate and the transcription endpoints. Timeouts are in seconds; a call
// past its deadline counts as a failed call, not a stuck batch.
type modelServerConfig struct {
	BaseURL           string `koanf:"base_url" validate:"required"`
	GenerateTimeout   int    `koanf:"generate_timeout"`
	TranscribeTimeout int    `koanf:"transcribe_timeout"`
}

type corsConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
	AllowMethods []string `koanf:"allow_methods"`
	AllowHeaders []string `koanf:"allow_headers"`
}

type milvusConfig struct {
	Address         string          `koanf:"address" validate:"required"`
	Collection      string          `koanf:"collection" validate:"required"`
	IndexHNSWConfig indexHNSWConfig `koanf:"index_hnsw_config"`
}

type indexHNSWConfig struct {
	MetricType     string `koanf:"metric_type"`
	M              int    `koanf:"m"`
	EfConstruction int    `koanf:"ef_construction"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type ingestConfig struct {
	ChunkSize    int `koanf:"chunk_size" validate:"required"`
	ChunkOverlap int `koanf:"chunk_overlap"`
}

// generationConfig carries the knobs of the question generation loop. Margin
// and InflationFactor default to +5 and x1.5; both are configurable because
// no principled value is known for either.
type generationConfig struct {
	BatchSize       int     `koanf:"batch_size" validate:"required"`
	MaxRetries      int     `koanf:"max_retries" validate:"required"`
	Margin          int     `koanf:"margin"`
	TopK            int     `koanf:"top_k"`
	InflationFactor float64 `koanf:"inflation_factor"`
}

type config struct {
	Server      serverConfig      `koanf:"server"`
	Database    databaseConfig    `koanf:"database"`
	OpenAI      openaiConfig      `koanf:"openai"`
	ModelServer modelServerConfig `koanf:"model_server"`
	LogLevel    logLevel          `koanf:"log_level"`
	Dns         string            `koanf:"dns"`
	S3          s3Config          `koanf:"s3"`
	Cors        corsConfig        `koanf:"cors"`
	Milvus      milvusConfig      `koanf:"milvus"`
	Ingest      ingestConfig      `koanf:"ingest"`
	Generation  generationConfig  `koanf:"generation"`
}

func buildMySQLDSN(cfg databaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

var defaultConfig = config{
	Server: serverConfig{
		Port:    8080,
		Mode:    "release",
		AppName: "llm-quiz",
	},
	Database: databaseConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Password:     "",
		Name:         "llm_quiz",
		MaxIdleConns: 4,
		MaxOpenConns: 16,
		MaxLifetime:  30,
	},
	OpenAI: openaiConfig{
		Key:            "",
		EmbeddingModel: "text-embedding-3-small",
	},
	ModelServer: modelServerConfig{
		BaseURL:           "http://localhost:8000",
		GenerateTimeout:   120,
		TranscribeTimeout: 300,
	},
	LogLevel: Info,
	S3: s3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
		UseSSL:    false,
		Bucket:    "uploads",
	},
	Milvus: milvusConfig{
		Address:    "localhost:19530",
		Collection: "material_chunks",
	},
	Ingest: ingestConfig{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	},
	Generation: generationConfig{
		BatchSize:       8,
		MaxRetries:      6,
		Margin:          5,
		TopK:            8,
		InflationFactor: 1.5,
	},
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

// envKey maps an APP_ env var to its koanf key path. A double underscore
// separates nesting levels; a single underscore stays part of the key, so
// APP_SERVER__PORT -> server.port and
// APP_GENERATION__BATCH_SIZE -> generation.batch_size.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "__", ".")
}

// Init loads the YAML file at path (if present) and APP_-prefixed env vars
// over the defaults, then validates the result. Safe to call more than once;
// only the first call does work.
func Init(path string) error {
	var initErr error
	once.Do(func() {
		initErr = load(path)
	})
	return initErr
}

func load(path string) error {
	k := koanf.New(".")

	validate := validator.New()
	Cfg = defaultConfig

	if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !os.IsNotExist(e) {
		return e
	}

	if e := k.Load(env.Provider("APP_", ".", envKey), nil); e != nil {
		return e
	}

	if e := k.Unmarshal("", &Cfg); e != nil {
		log.Errorf("failed to unmarshal config: %v", e)
		return e
	}

	if Cfg.Dns == "" {
		Cfg.Dns = buildMySQLDSN(Cfg.Database)
	}

	if err := validate.Struct(Cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			var sb strings.Builder
			sb.WriteString(fmt.Sprintf("%v config validation failed:\n", ModuleSetting))
			for _, e := range errs {
				sb.WriteString(
					fmt.Sprintf("  - %s: failed '%s' (value: %v)\n", e.Field(), e.Tag(), e.Value()),
				)
			}
			log.Error(sb.String())
		} else {
			log.Errorf("config validation failed: %v", err)
		}
		return err
	}
	return nil
}
