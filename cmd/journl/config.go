// ABOUTME: Config commands for inspecting and initialising the TOML config.
// ABOUTME: These run without opening storage.

package main

import (
	"fmt"

	"github.com/harper/journl/internal/config"
	"github.com/harper/journl/internal/ui"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or initialise configuration",
	Annotations: map[string]string{skipStore: "true"},
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		source := config.ConfigPath()
		switch {
		case configErr != nil:
			fmt.Println(ui.Error(fmt.Sprintf("config is invalid, showing defaults: %v", configErr)))
			source += " (invalid, using defaults)"
		case !config.Exists():
			source += " (not found, using defaults)"
		}
		fmt.Printf("# %s\n# resolved data path: %s\n", source, cfg.ResolvedDataPath())
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with default values",
	Long: `Write the default configuration to the config path. Flag overrides
are not persisted. An existing file, valid or not, is only replaced with
--force.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if config.Exists() && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", config.ConfigPath())
		}
		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wrote %s", config.ConfigPath())))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing config")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
