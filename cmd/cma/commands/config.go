package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/contentforge-io/cma-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration written to ~/.cma/config.yml.
type Config struct {
	API        string `json:"api,omitempty"         yaml:"api,omitempty"`
	Token      string `json:"token,omitempty"       yaml:"token,omitempty"`
	Space      string `json:"space,omitempty"       yaml:"space,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
	Cache      string `json:"cache,omitempty"       yaml:"cache,omitempty"`
	NATSURL    string `json:"nats_url,omitempty"    yaml:"nats_url,omitempty"`
	NATSBucket string `json:"nats_bucket,omitempty" yaml:"nats_bucket,omitempty"`
}

// configKeys is the closed set of keys 'config set' and 'config unset' accept.
var configKeys = []string{"api", "token", "space", "output", "cache", "nats_url", "nats_bucket"}

func isConfigKey(key string) bool {
	for _, known := range configKeys {
		if key == known {
			return true
		}
	}

	return false
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the persisted CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(config)
			case constants.FormatYAML:
				return renderYAML(config)
			default:
				displayConfigTable(config)

				return nil
			}
		},
	}
}

func displayConfigTable(config *Config) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Setting", "Value")

	token := config.Token
	if token != "" {
		token = constants.MaskedSecret
	}

	_ = table.Append("api", config.API)
	_ = table.Append("token", token)
	_ = table.Append("space", config.Space)
	_ = table.Append("output", config.Output)
	_ = table.Append("cache", config.Cache)

	if config.NATSURL != "" {
		_ = table.Append("nats_url", config.NATSURL)
		_ = table.Append("nats_bucket", config.NATSBucket)
	}

	_ = table.Render()
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if !isConfigKey(key) {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			viper.Set(key, value)

			err := saveConfig()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if !isConfigKey(key) {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			viper.Set(key, "")

			err := saveConfig()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", key)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirmAction("Really clear all configuration?") {
				_, _ = os.Stdout.WriteString("Cancelled\n")

				return nil
			}

			err := writeConfig(&Config{})
			if err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("Configuration cleared\n")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

// loadConfig assembles the effective configuration from viper.
func loadConfig() *Config {
	return &Config{
		API:        viper.GetString("api"),
		Token:      viper.GetString("token"),
		Space:      viper.GetString("space"),
		Output:     viper.GetString("output"),
		Cache:      viper.GetString("cache"),
		NATSURL:    viper.GetString("nats_url"),
		NATSBucket: viper.GetString("nats_bucket"),
	}
}

// saveConfig persists the effective configuration to the config file.
func saveConfig() error {
	return writeConfig(loadConfig())
}

func writeConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".cma")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
