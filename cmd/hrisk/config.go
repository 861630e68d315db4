package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohankatakam/healthrisk/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective HealthRisk configuration",
	Long: `Prints the configuration after defaults, config file and environment
variables have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the current settings",
	Long: `Writes the effective configuration to path
(default: ~/.healthrisk/config.yaml). Refuses to overwrite without --force.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.FileSystemError(err, "failed to find home directory")
		}
		path = filepath.Join(homeDir, ".healthrisk", "config.yaml")
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return errors.New(errors.ErrorTypeFileSystem, errors.SeverityMedium,
			fmt.Sprintf("%s already exists (use --force to overwrite)", path)).WithContext("path", path)
	}

	if err := cfg.Save(path); err != nil {
		return errors.FileSystemError(err, "failed to write config").WithContext("path", path)
	}
	logger.WithField("path", path).Info("Wrote config file")
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration written to %s\n", path)
	return nil
}
