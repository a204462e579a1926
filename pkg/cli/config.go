package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/m-mizutani/concierge/pkg/adapter"
	"github.com/m-mizutani/concierge/pkg/repository"
	"github.com/m-mizutani/concierge/pkg/utils/logging"
)

const defaultThresholdDays = 7

// config holds configuration values
type config struct {
	configFile string
	logLevel   string

	// Storage
	backend  string
	dataDir  string
	project  string
	database string

	// Oracle
	geminiProject  string
	geminiLocation string
	geminiModel    string

	thresholdDays int64
}

// fileConfig is the optional YAML settings file. Values from the file fill
// in whatever the flags and environment left empty.
type fileConfig struct {
	LogLevel              string `yaml:"log_level"`
	ReminderThresholdDays int64  `yaml:"reminder_threshold_days"`
	Storage               struct {
		Backend  string `yaml:"backend"`
		DataDir  string `yaml:"data_dir"`
		Project  string `yaml:"project"`
		Database string `yaml:"database"`
	} `yaml:"storage"`
	Gemini struct {
		Project  string `yaml:"project"`
		Location string `yaml:"location"`
		Model    string `yaml:"model"`
	} `yaml:"gemini"`
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to YAML settings file",
			Sources:     cli.EnvVars("CONCIERGE_CONFIG"),
			Destination: &cfg.configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("CONCIERGE_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "storage",
			Usage:       "Storage backend (local, firestore)",
			Value:       "local",
			Sources:     cli.EnvVars("CONCIERGE_STORAGE"),
			Destination: &cfg.backend,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory for local storage files",
			Sources:     cli.EnvVars("CONCIERGE_DATA_DIR"),
			Destination: &cfg.dataDir,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID for Firestore storage",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.IntFlag{
			Name:        "reminder-threshold-days",
			Usage:       "How many days ahead the reminder scan looks",
			Value:       defaultThresholdDays,
			Sources:     cli.EnvVars("CONCIERGE_REMINDER_THRESHOLD_DAYS"),
			Destination: &cfg.thresholdDays,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini generative model name",
			Sources:     cli.EnvVars("GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
	}
}

// setup merges the optional settings file and attaches the configured logger
// to the context. Call once at the top of each command action.
func (cfg *config) setup(ctx context.Context) (context.Context, error) {
	if cfg.configFile != "" {
		if err := cfg.applyFile(); err != nil {
			return ctx, err
		}
	}

	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger), nil
}

func (cfg *config) applyFile() error {
	data, err := os.ReadFile(cfg.configFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read settings file", goerr.V("path", cfg.configFile))
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return goerr.Wrap(err, "failed to parse settings file", goerr.V("path", cfg.configFile))
	}

	if cfg.logLevel == "info" && fc.LogLevel != "" {
		cfg.logLevel = fc.LogLevel
	}
	if cfg.thresholdDays == defaultThresholdDays && fc.ReminderThresholdDays > 0 {
		cfg.thresholdDays = fc.ReminderThresholdDays
	}
	if cfg.backend == "local" && fc.Storage.Backend != "" {
		cfg.backend = fc.Storage.Backend
	}
	if cfg.dataDir == "" {
		cfg.dataDir = fc.Storage.DataDir
	}
	if cfg.project == "" {
		cfg.project = fc.Storage.Project
	}
	if cfg.database == "(default)" && fc.Storage.Database != "" {
		cfg.database = fc.Storage.Database
	}
	if cfg.geminiProject == "" {
		cfg.geminiProject = fc.Gemini.Project
	}
	if cfg.geminiLocation == "us-central1" && fc.Gemini.Location != "" {
		cfg.geminiLocation = fc.Gemini.Location
	}
	if cfg.geminiModel == "" {
		cfg.geminiModel = fc.Gemini.Model
	}
	return nil
}

// newRepository creates the configured storage backend.
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	switch cfg.backend {
	case "local", "":
		dir := cfg.dataDir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, goerr.Wrap(err, "failed to resolve home directory")
			}
			dir = filepath.Join(home, ".concierge")
		}
		repo, err := repository.NewLocal(dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create local repository")
		}
		return repo, nil

	case "firestore":
		if cfg.project == "" {
			return nil, goerr.New("project is required for firestore storage")
		}
		repo, err := repository.NewFirestore(ctx, cfg.project, cfg.database)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create firestore repository")
		}
		return repo, nil

	default:
		return nil, goerr.New("unknown storage backend", goerr.V("backend", cfg.backend))
	}
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.geminiProject == "" {
		return nil, goerr.New("gemini-project is required")
	}
	if cfg.geminiLocation == "" {
		return nil, goerr.New("gemini-location is required")
	}

	var opts []adapter.GeminiOption
	if cfg.geminiModel != "" {
		opts = append(opts, adapter.WithModel(cfg.geminiModel))
	}
	return adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation, opts...)
}
