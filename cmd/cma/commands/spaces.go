package commands

import (
	"fmt"
	"os"

	"github.com/contentforge-io/cma-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSpacesCommand creates the spaces command group.
func NewSpacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spaces",
		Short: "Inspect spaces",
	}

	cmd.AddCommand(newSpacesGetCommand())

	return cmd
}

func newSpacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [SPACE_ID]",
		Short: "Show a space",
		Long:  "Show a space by id, defaulting to the configured space",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				spaceID string
				err     error
			)

			if len(args) > 0 {
				spaceID = args[0]
			} else {
				spaceID, err = requireSpace()
				if err != nil {
					return err
				}
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			space, err := client.Spaces().Get(cmd.Context(), spaceID)
			if err != nil {
				return fmt.Errorf("failed to get space: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(space)
			case constants.FormatYAML:
				return renderYAML(space)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("ID", space.Sys.ID)
				_ = table.Append("Name", space.Name)

				defaultLocale := space.DefaultLocale
				if defaultLocale == "" {
					defaultLocale = constants.DefaultLocale
				}

				_ = table.Append("Default Locale", defaultLocale)
				_ = table.Append("Created", formatTimestamp(space.Sys.CreatedAt))

				_ = table.Render()

				return nil
			}
		},
	}
}
