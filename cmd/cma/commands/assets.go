package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"

	"github.com/contentforge-io/cma-client/internal/constants"
	"github.com/contentforge-io/cma-client/pkg/cma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewAssetsCommand creates the assets command group.
func NewAssetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
		Long:  "Inspect assets, trigger file processing, and drive the publish lifecycle",
	}

	cmd.AddCommand(newAssetsListCommand())
	cmd.AddCommand(newAssetsGetCommand())
	cmd.AddCommand(newAssetsProcessCommand())
	cmd.AddCommand(newAssetsLifecycleCommand("publish", "Publish an asset",
		func(ctx context.Context, client cma.Client, asset *cma.Asset) (*cma.Asset, error) {
			return client.Assets().Publish(ctx, asset)
		}))
	cmd.AddCommand(newAssetsLifecycleCommand("unpublish", "Unpublish an asset",
		func(ctx context.Context, client cma.Client, asset *cma.Asset) (*cma.Asset, error) {
			return client.Assets().Unpublish(ctx, asset)
		}))
	cmd.AddCommand(newAssetsLifecycleCommand("archive", "Archive an asset",
		func(ctx context.Context, client cma.Client, asset *cma.Asset) (*cma.Asset, error) {
			return client.Assets().Archive(ctx, asset)
		}))
	cmd.AddCommand(newAssetsLifecycleCommand("unarchive", "Unarchive an asset",
		func(ctx context.Context, client cma.Client, asset *cma.Asset) (*cma.Asset, error) {
			return client.Assets().Unarchive(ctx, asset)
		}))
	cmd.AddCommand(newAssetsDeleteCommand())

	return cmd
}

func newAssetsListCommand() *cobra.Command {
	var (
		limit int
		skip  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
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

			if skip > 0 {
				query.Set("skip", strconv.Itoa(skip))
			}

			assets, err := client.Assets().List(cmd.Context(), space, query)
			if err != nil {
				return fmt.Errorf("failed to list assets: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(assets)
			case constants.FormatYAML:
				return renderYAML(assets)
			default:
				if len(assets.Items) == 0 {
					_, _ = os.Stdout.WriteString("No assets found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Version", "Status", "Updated")

				for _, asset := range assets.Items {
					_ = table.Append(
						asset.Sys.ID,
						strconv.Itoa(asset.Sys.Version),
						resourceStatus(asset.Sys),
						formatTimestamp(asset.Sys.UpdatedAt),
					)
				}

				_ = table.Render()

				_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d assets\n", len(assets.Items), assets.Total)

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.StandardPageSize, "maximum number of assets to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of assets to skip")

	return cmd
}

func newAssetsGetCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "get ASSET_ID",
		Short: "Show an asset",
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

			asset, err := client.Assets().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				doc, err := newAssetDocument(asset)
				if err != nil {
					return err
				}

				return renderJSON(doc)
			case constants.FormatYAML:
				doc, err := newAssetDocument(asset)
				if err != nil {
					return err
				}

				return renderYAML(doc)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("ID", asset.Sys.ID)
				_ = table.Append("Version", strconv.Itoa(asset.Sys.Version))
				_ = table.Append("Status", resourceStatus(asset.Sys))
				_ = table.Append("Created", formatTimestamp(asset.Sys.CreatedAt))
				_ = table.Append("Updated", formatTimestamp(asset.Sys.UpdatedAt))

				view := asset.Fields.LocaleView(locale, constants.DefaultLocale)

				names := make([]string, 0, len(view))
				for name := range view {
					names = append(names, name)
				}

				sort.Strings(names)

				for _, name := range names {
					_ = table.Append(name+" ("+locale+")", formatFieldValue(view[name]))
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&locale, "locale", constants.DefaultLocale, "locale to display field values in")

	return cmd
}

func newAssetsProcessCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "process ASSET_ID",
		Short: "Process an asset's file",
		Long:  "Ask the server to ingest the uploaded file for a locale",
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

			asset, err := client.Assets().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			err = client.Assets().Process(cmd.Context(), asset, locale)
			if err != nil {
				return fmt.Errorf("failed to process asset: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Processing file of asset '%s' at %s\n", args[0], locale)

			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", constants.DefaultLocale, "locale whose file should be processed")

	return cmd
}

func newAssetsLifecycleCommand(verb, short string, transition func(context.Context, cma.Client, *cma.Asset) (*cma.Asset, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " ASSET_ID",
		Short: short,
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

			asset, err := client.Assets().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			updated, err := transition(cmd.Context(), client, asset)
			if err != nil {
				return fmt.Errorf("failed to %s asset: %w", verb, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Asset '%s' is now %s (version %d)\n",
				updated.Sys.ID, resourceStatus(updated.Sys), updated.Sys.Version)

			return nil
		},
	}
}

func newAssetsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ASSET_ID",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirmAction(fmt.Sprintf("Really delete asset '%s'?", args[0])) {
				_, _ = os.Stdout.WriteString("Cancelled\n")

				return nil
			}

			space, err := requireSpace()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			asset, err := client.Assets().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			_, err = client.Assets().Destroy(cmd.Context(), asset)
			if err != nil {
				return fmt.Errorf("failed to delete asset: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted asset '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}
