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
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewEntriesCommand creates the entries command group.
func NewEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Manage entries",
		Long:  "Create, inspect, update, and drive the publish lifecycle of entries",
	}

	cmd.AddCommand(newEntriesListCommand())
	cmd.AddCommand(newEntriesGetCommand())
	cmd.AddCommand(newEntriesCreateCommand())
	cmd.AddCommand(newEntriesUpdateCommand())
	cmd.AddCommand(newEntriesLifecycleCommand("publish", "Publish an entry",
		func(ctx context.Context, client cma.Client, entry *cma.Entry) (*cma.Entry, error) {
			return client.Entries().Publish(ctx, entry)
		}))
	cmd.AddCommand(newEntriesLifecycleCommand("unpublish", "Unpublish an entry",
		func(ctx context.Context, client cma.Client, entry *cma.Entry) (*cma.Entry, error) {
			return client.Entries().Unpublish(ctx, entry)
		}))
	cmd.AddCommand(newEntriesLifecycleCommand("archive", "Archive an entry",
		func(ctx context.Context, client cma.Client, entry *cma.Entry) (*cma.Entry, error) {
			return client.Entries().Archive(ctx, entry)
		}))
	cmd.AddCommand(newEntriesLifecycleCommand("unarchive", "Unarchive an entry",
		func(ctx context.Context, client cma.Client, entry *cma.Entry) (*cma.Entry, error) {
			return client.Entries().Unarchive(ctx, entry)
		}))
	cmd.AddCommand(newEntriesDeleteCommand())

	return cmd
}

func newEntriesListCommand() *cobra.Command {
	var (
		contentType string
		limit       int
		skip        int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
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

			if contentType != "" {
				query.Set("content_type", contentType)
			}

			entries, err := client.Entries().List(cmd.Context(), space, query)
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(entries)
			case constants.FormatYAML:
				return renderYAML(entries)
			default:
				if len(entries.Items) == 0 {
					_, _ = os.Stdout.WriteString("No entries found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Content Type", "Version", "Status", "Updated")

				for _, entry := range entries.Items {
					_ = table.Append(
						entry.Sys.ID,
						entry.ContentTypeID(),
						strconv.Itoa(entry.Sys.Version),
						resourceStatus(entry.Sys),
						formatTimestamp(entry.Sys.UpdatedAt),
					)
				}

				_ = table.Render()

				_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d entries\n", len(entries.Items), entries.Total)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "filter by content type")
	cmd.Flags().IntVar(&limit, "limit", constants.StandardPageSize, "maximum number of entries to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of entries to skip")

	return cmd
}

func newEntriesGetCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "get ENTRY_ID",
		Short: "Show an entry",
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

			entry, err := client.Entries().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			return outputEntry(entry, locale)
		},
	}

	cmd.Flags().StringVar(&locale, "locale", constants.DefaultLocale, "locale to display field values in")

	return cmd
}

func outputEntry(entry *cma.Entry, locale string) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		doc, err := newEntryDocument(entry)
		if err != nil {
			return err
		}

		return renderJSON(doc)
	case constants.FormatYAML:
		doc, err := newEntryDocument(entry)
		if err != nil {
			return err
		}

		return renderYAML(doc)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		_ = table.Append("ID", entry.Sys.ID)
		_ = table.Append("Content Type", entry.ContentTypeID())
		_ = table.Append("Version", strconv.Itoa(entry.Sys.Version))
		_ = table.Append("Status", resourceStatus(entry.Sys))
		_ = table.Append("Created", formatTimestamp(entry.Sys.CreatedAt))
		_ = table.Append("Updated", formatTimestamp(entry.Sys.UpdatedAt))

		view := entry.Fields.LocaleView(locale, constants.DefaultLocale)

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
}

func newEntriesCreateCommand() *cobra.Command {
	var (
		contentType string
		entryID     string
		generateID  bool
		fields      []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an entry",
		Long: `Create an entry of the given content type. Field values that parse
as JSON keep their JSON type; everything else is stored as text.`,
		Example: `  cma entries create --content-type blog --field title="Hello" --field rating=5
  cma entries create --content-type blog --generate-id --field title="Hello"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := requireSpace()
			if err != nil {
				return err
			}

			attrs, err := parseFieldValues(fields)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			if generateID && entryID == "" {
				entryID = uuid.NewString()
			}

			var entry *cma.Entry
			if entryID != "" {
				entry, err = client.Entries().CreateWithID(cmd.Context(), space, contentType, entryID, attrs)
			} else {
				entry, err = client.Entries().Create(cmd.Context(), space, contentType, attrs)
			}

			if err != nil {
				return fmt.Errorf("failed to create entry: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created entry '%s' (version %d)\n", entry.Sys.ID, entry.Sys.Version)

			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "content type of the new entry (required)")
	cmd.Flags().StringVar(&entryID, "id", "", "create the entry at this id")
	cmd.Flags().BoolVar(&generateID, "generate-id", false, "generate a client-side id for the new entry")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field value as NAME=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("content-type")

	return cmd
}

func newEntriesUpdateCommand() *cobra.Command {
	var (
		locale string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "update ENTRY_ID",
		Short: "Update an entry",
		Long: `Update fields of an entry at a locale. Untouched fields and other
locales are preserved. A concurrent edit on the server surfaces as a
version conflict and is never retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := requireSpace()
			if err != nil {
				return err
			}

			attrs, err := parseFieldValues(fields)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			entry, err := client.Entries().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			updated, err := client.Entries().Update(cmd.Context(), entry, attrs, locale)
			if err != nil {
				if cma.IsVersionConflict(err) {
					return fmt.Errorf("entry '%s' was modified concurrently, re-run to retry: %w", args[0], err)
				}

				return fmt.Errorf("failed to update entry: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated entry '%s' (version %d)\n", updated.Sys.ID, updated.Sys.Version)

			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "locale to write field values at (defaults to the entry's locale)")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field value as NAME=VALUE (repeatable)")

	return cmd
}

func newEntriesLifecycleCommand(verb, short string, transition func(context.Context, cma.Client, *cma.Entry) (*cma.Entry, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " ENTRY_ID",
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

			entry, err := client.Entries().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			updated, err := transition(cmd.Context(), client, entry)
			if err != nil {
				return fmt.Errorf("failed to %s entry: %w", verb, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Entry '%s' is now %s (version %d)\n",
				updated.Sys.ID, resourceStatus(updated.Sys), updated.Sys.Version)

			return nil
		},
	}
}

func newEntriesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete an entry",
		Long:  "Delete an entry. Published entries must be unpublished first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirmAction(fmt.Sprintf("Really delete entry '%s'?", args[0])) {
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

			entry, err := client.Entries().Get(cmd.Context(), space, args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			_, err = client.Entries().Destroy(cmd.Context(), entry)
			if err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted entry '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}
