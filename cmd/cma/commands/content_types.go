package commands

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/contentforge-io/cma-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewContentTypesCommand creates the content-types command group.
func NewContentTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "content-types",
		Aliases: []string{"ct"},
		Short:   "Manage content types",
		Long:    "Inspect and publish the content type schemas governing entry fields",
	}

	cmd.AddCommand(newContentTypesListCommand())
	cmd.AddCommand(newContentTypesGetCommand())
	cmd.AddCommand(newContentTypesPublishCommand())
	cmd.AddCommand(newContentTypesInvalidateCommand())

	return cmd
}

func newContentTypesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content types",
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := requireSpace()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			query := url.Values{}
			query.Set("limit", strconv.Itoa(limit))

			schemas, err := client.ContentTypes().List(cmd.Context(), space, query)
			if err != nil {
				return fmt.Errorf("failed to list content types: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(schemas)
			case constants.FormatYAML:
				return renderYAML(schemas)
			default:
				if len(schemas.Items) == 0 {
					_, _ = os.Stdout.WriteString("No content types found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Display Field", "Fields", "Version")

				for _, schema := range schemas.Items {
					_ = table.Append(
						schema.ID(),
						schema.Name,
						schema.DisplayField,
						strconv.Itoa(len(schema.Fields)),
						strconv.Itoa(schema.Sys.Version),
					)
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.StandardPageSize, "maximum number of content types to return")

	return cmd
}

func newContentTypesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONTENT_TYPE_ID",
		Short: "Show a content type schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := requireSpace()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			schema, err := client.ContentTypes().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get content type: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(schema)
			case constants.FormatYAML:
				return renderYAML(schema)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "%s (%s), display field %q\n\n", schema.Name, schema.ID(), schema.DisplayField)

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Name", "Type", "Required", "Localized")

				for _, field := range schema.Fields {
					fieldType := string(field.Type)
					if field.LinkType != "" {
						fieldType += " -> " + field.LinkType
					} else if field.Items != nil {
						fieldType += " of " + string(field.Items.Type)
						if field.Items.LinkType != "" {
							fieldType += " -> " + field.Items.LinkType
						}
					}

					_ = table.Append(
						field.ID,
						field.Name,
						fieldType,
						strconv.FormatBool(field.Required),
						strconv.FormatBool(field.Localized),
					)
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newContentTypesPublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish CONTENT_TYPE_ID",
		Short: "Publish a content type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := requireSpace()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			schema, err := client.ContentTypes().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get content type: %w", err)
			}

			published, err := client.ContentTypes().Publish(cmd.Context(), space, schema)
			if err != nil {
				return fmt.Errorf("failed to publish content type: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Published content type '%s' (version %d)\n", published.ID(), published.Sys.Version)

			return nil
		},
	}
}

func newContentTypesInvalidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate CONTENT_TYPE_ID",
		Short: "Invalidate the cached schema for a content type",
		Long: `Drop the locally cached schema for a content type so the next entry
operation re-fetches it. Needed after a schema change on the server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := requireSpace()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			err = client.Schemas().Invalidate(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to invalidate schema: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Invalidated cached schema for '%s'\n", args[0])

			return nil
		},
	}
}
