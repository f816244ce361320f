// Package bootstrap constructs the application's dependencies in order:
// configuration, logger, registry, file store. Nothing here is a global;
// the assembled App is handed to the caller.
package bootstrap

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/campusone/registrar/internal/app/registry"
	"github.com/campusone/registrar/internal/app/store"
	"github.com/campusone/registrar/internal/config"
	"github.com/campusone/registrar/internal/pkg/logger"
	"github.com/campusone/registrar/internal/seed"
)

// Options carries command-line overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	DataDir    string // overrides config when non-empty
	Seed       bool   // forces seeding of an empty registry
}

// App holds all the application dependencies
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	University *registry.University
	Store      *store.FileStore
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// Setup builds the registry and its file store, then restores any saved
// state. A fresh registry is seeded with sample data when requested.
func Setup(opts Options) (*App, error) {
	cfg, lgr, err := LoadConfigAndSetupLogger(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.DataDir != "" {
		cfg.Data.Dir = opts.DataDir
	}
	if opts.Seed {
		cfg.Seed.Enabled = true
	}

	university := registry.New(lgr)

	fileStore, err := store.New(cfg.Data.Dir, cfg.Data.StudentsFile, cfg.Data.CoursesFile, cfg.Data.EnrollmentsFile, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file store")
		return nil, err
	}

	if err := fileStore.Load(university); err != nil {
		// Partial loads are usable; report and continue with what parsed.
		lgr.Error().Err(err).Msg("Errors while loading saved data")
	}

	if cfg.Seed.Enabled && university.StudentCount() == 0 && university.CourseCount() == 0 {
		if err := seed.CreateSampleData(university, lgr); err != nil {
			lgr.Error().Err(err).Msg("Errors while seeding sample data")
		}
	}

	return &App{
		Config:     cfg,
		Logger:     lgr,
		University: university,
		Store:      fileStore,
	}, nil
}
