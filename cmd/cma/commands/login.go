package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command. It prompts for the endpoint and
// token when they are not supplied via flags, verifies the credentials when a
// space is configured, and persists the result.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate against a management API endpoint",
		Long: `Store the API endpoint and personal access token in the CLI
configuration. The token is read without echo when prompted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := viper.GetString("api")
			if endpoint == "" {
				var err error

				endpoint, err = promptLine("API endpoint: ")
				if err != nil {
					return err
				}
			}

			if endpoint == "" {
				return ErrNoEndpointConfigured
			}

			token := viper.GetString("token")
			if token == "" {
				var err error

				token, err = promptToken("Access token: ")
				if err != nil {
					return err
				}
			}

			if token == "" {
				return ErrNoTokenConfigured
			}

			viper.Set("api", endpoint)
			viper.Set("token", token)

			// Verify the credentials against the configured space, if any.
			if space := viper.GetString("space"); space != "" {
				client, err := CreateClient(cmd.Context())
				if err != nil {
					return err
				}

				spaceResource, err := client.Spaces().Get(cmd.Context(), space)
				if err != nil {
					return fmt.Errorf("verifying credentials: %w", err)
				}

				_, _ = fmt.Fprintf(os.Stdout, "Authenticated against space '%s'\n", spaceResource.Name)
			}

			err := saveConfig()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in to %s\n", endpoint)

			return nil
		},
	}
}

func promptLine(prompt string) (string, error) {
	_, err := os.Stdout.WriteString(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func promptToken(prompt string) (string, error) {
	_, err := os.Stdout.WriteString(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	tokenBytes, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	_, _ = os.Stdout.WriteString("\n") // Add newline after hidden input

	return strings.TrimSpace(string(tokenBytes)), nil
}
