package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/contentforge-io/cma-client/internal/constants"
	"github.com/contentforge-io/cma-client/pkg/cma"
	"github.com/contentforge-io/cma-client/pkg/cmaclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common static errors used throughout the commands package.
var (
	ErrNoEndpointConfigured = errors.New("no API endpoint configured (use 'cma login' or --api)")
	ErrNoTokenConfigured    = errors.New("no access token configured (use 'cma login' or --token)")
	ErrSpaceRequired        = errors.New("space is required (use --space or 'cma config set space')")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrInvalidFieldFormat   = errors.New("invalid field format, expected NAME=VALUE")
	ErrNoFieldsGiven        = errors.New("at least one --field is required")
)

// CreateClient builds a management API client from the effective
// configuration (flags, environment, config file).
func CreateClient(ctx context.Context) (cma.Client, error) {
	endpoint := viper.GetString("api")
	if endpoint == "" {
		return nil, ErrNoEndpointConfigured
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, ErrNoTokenConfigured
	}

	config := &cma.Config{
		Endpoint:    endpoint,
		AccessToken: token,
		SpaceID:     viper.GetString("space"),
		Debug:       viper.GetBool("verbose"),
	}

	if cacheType := viper.GetString("cache"); cacheType != "" {
		config.Cache = &cma.CacheConfig{Type: cma.CacheType(cacheType)}

		if config.Cache.Type == cma.CacheTypeNATS {
			config.Cache.NATS = &cma.NATSKVConfig{
				URL:    viper.GetString("nats_url"),
				Bucket: viper.GetString("nats_bucket"),
			}
		}
	}

	client, err := cmaclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// requireSpace returns the space to operate in, from --space or the config.
func requireSpace() (string, error) {
	space := viper.GetString("space")
	if space == "" {
		return "", ErrSpaceRequired
	}

	return space, nil
}

// renderJSON writes v to stdout as indented JSON.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}

	return nil
}

// renderYAML writes v to stdout as YAML.
func renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding to YAML: %w", err)
	}

	return encoder.Close()
}

// entryDocument is the serializable projection of an entry for json/yaml
// output: sys plus the wire-shaped fields block across all locales.
type entryDocument struct {
	Sys    cma.Sys           `json:"sys"    yaml:"sys"`
	Fields cma.UpdatePayload `json:"fields" yaml:"fields"`
}

func newEntryDocument(entry *cma.Entry) (*entryDocument, error) {
	fields, err := cma.ComputeUpdatePayload(entry.Fields, nil, constants.DefaultLocale, nil)
	if err != nil {
		return nil, fmt.Errorf("encoding entry fields: %w", err)
	}

	return &entryDocument{Sys: entry.Sys, Fields: fields}, nil
}

// assetDocument mirrors entryDocument for assets.
type assetDocument struct {
	Sys    cma.Sys           `json:"sys"    yaml:"sys"`
	Fields cma.UpdatePayload `json:"fields" yaml:"fields"`
}

func newAssetDocument(asset *cma.Asset) (*assetDocument, error) {
	fields, err := cma.ComputeUpdatePayload(asset.Fields, nil, constants.DefaultLocale, nil)
	if err != nil {
		return nil, fmt.Errorf("encoding asset fields: %w", err)
	}

	return &assetDocument{Sys: asset.Sys, Fields: fields}, nil
}

// parseFieldValues parses repeated NAME=VALUE flags into an attribute map.
// Values that parse as JSON keep their JSON type; everything else is a string.
func parseFieldValues(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, ErrNoFieldsGiven
	}

	attrs := make(map[string]interface{}, len(pairs))

	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldFormat, pair)
		}

		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}

		attrs[name] = value
	}

	return attrs, nil
}

// resourceStatus names the lifecycle state carried in a sys block.
func resourceStatus(sys cma.Sys) string {
	switch {
	case sys.ArchivedAt != nil:
		return "archived"
	case sys.PublishedAt != nil:
		return "published"
	default:
		return "draft"
	}
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

// formatFieldValue renders a field value for table display, truncating long
// strings.
func formatFieldValue(value cma.FieldValue) string {
	var rendered string

	switch value.Kind {
	case cma.KindString:
		rendered = value.Str
	case cma.KindNumber:
		rendered = fmt.Sprintf("%g", value.Num)
	case cma.KindBool:
		rendered = fmt.Sprintf("%t", value.Bool)
	case cma.KindLink:
		rendered = fmt.Sprintf("-> %s %s", value.Link.LinkType, value.Link.ID)
	case cma.KindLocation:
		rendered = fmt.Sprintf("(%g, %g)", value.Loc.Lat, value.Loc.Lon)
	case cma.KindList:
		parts := make([]string, 0, len(value.List))
		for _, elem := range value.List {
			parts = append(parts, formatFieldValue(elem))
		}

		rendered = "[" + strings.Join(parts, ", ") + "]"
	default:
		rendered = fmt.Sprintf("%v", value.Raw)
	}

	if len(rendered) > constants.StringTruncationLength {
		rendered = rendered[:constants.StringTruncationLength-3] + "..."
	}

	return rendered
}

func confirmAction(prompt string) bool {
	_, _ = fmt.Fprintf(os.Stdout, "%s (y/N): ", prompt)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}
