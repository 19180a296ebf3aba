package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/vvka-141/markuid/internal/config"
	"github.com/vvka-141/markuid/pkg/markuid"
)

// operationFlags holds the flag values shared by check, update and remove.
type operationFlags struct {
	configDir       string
	intermediateDir string
	workers         int
	json            bool
	dryRun          bool
}

// settings is the configuration a run uses after every source is merged.
type settings struct {
	Config          *config.ProjectConfig
	ProjectRoot     string
	IntermediateDir string
}

// loadProjectConfig loads godotenv and project configuration.
// Returns nil config if markuid.yaml does not exist and the directory was not
// named explicitly.
func loadProjectConfig(configDir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	dir := configDir
	if dir == "" {
		dir = "."
	}

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if configDir != "" {
				return nil, fmt.Errorf("%s not found in %s: %w", config.ConfigFileName, configDir, markuid.ErrInvalidConfig)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveSettings merges configuration with precedence
// flags > environment > markuid.yaml > defaults, then validates it.
func resolveSettings(flags operationFlags, lookupEnv func(string) (string, bool), logger markuid.Logger) (*settings, error) {
	projectCfg, err := loadProjectConfig(flags.configDir)
	if err != nil {
		return nil, err
	}
	if projectCfg == nil {
		logger.Verbose("no %s found, using defaults", config.ConfigFileName)
		projectCfg = &config.ProjectConfig{}
	}

	if err := projectCfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}
	if flags.workers != 0 {
		projectCfg.Workers = flags.workers
	}
	if flags.intermediateDir != "" {
		projectCfg.IntermediateDir = flags.intermediateDir
	}

	cfg := projectCfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root := flags.configDir
	if root == "" {
		root = "."
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	s := &settings{
		Config:          cfg,
		ProjectRoot:     root,
		IntermediateDir: cfg.ResolveIntermediateDir(root),
	}
	logger.Verbose("project root: %s", s.ProjectRoot)
	logger.Verbose("intermediate directory: %s", s.IntermediateDir)
	logger.Verbose("workers: %d", cfg.Workers)
	return s, nil
}

// lookupEnv is swapped in tests.
var lookupEnv = os.LookupEnv
