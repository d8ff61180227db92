package cmd

import (
	"fmt"

	"github.com/NomadCrew/splitly-backend/config"
	"github.com/spf13/cobra"
)

var templateEnv string

func init() {
	configTemplateCmd.Flags().StringVar(&templateEnv, "env", string(config.EnvDevelopment), "Environment: development or production")
	configCmd.AddCommand(configTemplateCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a starting YAML config",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env := config.Environment(templateEnv)
		if env != config.EnvDevelopment && env != config.EnvProduction {
			return fmt.Errorf("unknown environment %q", templateEnv)
		}
		out, err := config.Template(env)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
