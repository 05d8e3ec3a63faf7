package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/the-deep/qber-backend/pkg/apihelpers"
	"github.com/the-deep/qber-backend/pkg/db"
	"github.com/the-deep/qber-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	qbankDB "github.com/the-deep/qber-backend/pkg/db/qbank"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_QBANK_DB_USERNAME = "QBANK_DB_USERNAME"
	ENV_QBANK_DB_PASSWORD = "QBANK_DB_PASSWORD"

	ENV_EDITOR_USER_JWT_SIGN_KEY   = "EDITOR_USER_JWT_SIGN_KEY"
	ENV_EDITOR_USER_JWT_EXPIRES_IN = "EDITOR_USER_JWT_EXPIRES_IN"
)

type ManagementApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	EditorUserJWTConfig struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"editor_user_jwt_config" yaml:"editor_user_jwt_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// DB configs
	DBConfigs struct {
		QBankDB db.DBConfigYaml `json:"qbank_db" yaml:"qbank_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// To store uploaded and generated files
	FilestorePath string `json:"filestore_path" yaml:"filestore_path"`
}

var conf ManagementApiConfig

var (
	qbankDBService *qbankDB.QBankDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	checkFilestorePath()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_QBANK_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.QBankDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_QBANK_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.QBankDB.Password = dbPassword
	}

	if signKey := os.Getenv(ENV_EDITOR_USER_JWT_SIGN_KEY); signKey != "" {
		conf.EditorUserJWTConfig.SignKey = signKey
	}

	if expiresIn := os.Getenv(ENV_EDITOR_USER_JWT_EXPIRES_IN); expiresIn != "" {
		d, err := utils.ParseDurationString(expiresIn)
		if err != nil {
			slog.Error("Cannot parse token expiration override", slog.String("error", err.Error()))
			panic(err)
		}
		conf.EditorUserJWTConfig.ExpiresIn = d
	}
}

func initDBs() {
	var err error
	qbankDBService, err = qbankDB.NewQBankDBService(db.DBConfigFromYamlObj(conf.DBConfigs.QBankDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to question bank DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func checkFilestorePath() {
	// To store dynamically generated files
	fsPath := conf.FilestorePath
	if fsPath == "" {
		slog.Error("Filestore path not set")
		panic("Filestore path not set")
	}

	if _, err := os.Stat(fsPath); os.IsNotExist(err) {
		slog.Error("Filestore path does not exist", slog.String("path", fsPath))
		panic("Filestore path does not exist")
	}
}
