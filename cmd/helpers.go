package cmd

import (
	"github.com/abordage/schemas/internal/app"
	"github.com/abordage/schemas/internal/config"
	"github.com/abordage/schemas/internal/errors"
	"github.com/abordage/schemas/internal/logging"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

// loadConfig reads the configuration file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.ConfigError("failed to load configuration", err)
	}

	if schemaDir != "" {
		cfg.SchemaDir = schemaDir
	}
	if examplesDir != "" {
		cfg.ExamplesDir = examplesDir
	}
	if checkJobs > 0 {
		cfg.Jobs = checkJobs
	}
	if noStrict {
		cfg.Strict = false
	}

	logging.Debug("configuration loaded", "file", configPath,
		"schemas", cfg.SchemaDir, "examples", cfg.ExamplesDir, "draft", cfg.Draft)
	return cfg, nil
}

// loadApp builds the service container for one command invocation.
func loadApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(app.WithConfig(cfg))
}

// rerunCommand is the command line suggested for re-checking one schema.
func rerunCommand() []string {
	args := []string{rootCmd.Name(), "check"}
	if configPath != config.DefaultConfigFile {
		args = append(args, "--config", configPath)
	}
	if schemaDir != "" {
		args = append(args, "--schemas", schemaDir)
	}
	if examplesDir != "" {
		args = append(args, "--examples", examplesDir)
	}
	if noStrict {
		args = append(args, "--no-strict")
	}
	return args
}
