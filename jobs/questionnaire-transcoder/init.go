package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/the-deep/qber-backend/pkg/db"
	"github.com/the-deep/qber-backend/pkg/utils"
	"gopkg.in/yaml.v2"

	qbankDB "github.com/the-deep/qber-backend/pkg/db/qbank"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_QBANK_DB_USERNAME = "QBANK_DB_USERNAME"
	ENV_QBANK_DB_PASSWORD = "QBANK_DB_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		QBankDB db.DBConfigYaml `json:"qbank_db" yaml:"qbank_db"`
	} `json:"db_configs" yaml:"db_configs"`

	InstanceIDs []string `json:"instance_ids" yaml:"instance_ids"`

	// Where generated export files are written
	FilestorePath string `json:"filestore_path" yaml:"filestore_path"`

	// Started tasks older than this are assumed orphaned and put back to
	// pending on startup
	StaleTaskTimeout time.Duration `json:"stale_task_timeout" yaml:"stale_task_timeout"`
}

var conf config

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

	// init db
	initDBs()

	if conf.FilestorePath == "" {
		slog.Error("Filestore path must be set to define where to store export files")
		panic("filestore path not set")
	}

	if _, err := os.Stat(conf.FilestorePath); os.IsNotExist(err) {
		// create folder
		err = os.MkdirAll(conf.FilestorePath, os.ModePerm)
		if err != nil {
			slog.Error("Error creating filestore path", slog.String("error", err.Error()))
			panic(err)
		}
		slog.Info("Created filestore path", slog.String("path", conf.FilestorePath))
	}

	if conf.StaleTaskTimeout < time.Minute {
		conf.StaleTaskTimeout = 30 * time.Minute
	}
}

func secretsOverride() {
	// Override secrets from environment variables

	if dbUsername := os.Getenv(ENV_QBANK_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.QBankDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_QBANK_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.QBankDB.Password = dbPassword
	}
}

func initDBs() {
	var err error
	qbankDBService, err = qbankDB.NewQBankDBService(db.DBConfigFromYamlObj(conf.DBConfigs.QBankDB, conf.InstanceIDs))
	if err != nil {
		slog.Error("Error connecting to question bank DB", slog.String("error", err.Error()))
		panic(err)
	}
}
