package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/issuetrack-io/jira-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		server   string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Jira",
		Long:  "Authenticate with a Jira server and save the connection settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = viper.GetString("server")
			}

			if server == "" {
				return ErrServerRequired
			}

			viper.Set("server", server)

			if username == "" {
				username = viper.GetString("user")
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			// Missing credentials fall through to the terminal prompt.
			session, err := client.LoginAs(ctx, username, password)
			if err != nil {
				return fmt.Errorf("logging in: %w", err)
			}

			info, err := client.ServerInfo(ctx)
			if err != nil {
				return fmt.Errorf("connecting to server: %w", err)
			}

			if err := saveConnection(server, username); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
			}

			fmt.Printf("Logged in to %s (Jira %s, %s mode)\n", server, info.Version, session.Mode)

			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Jira base URL")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password or API token (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Jira",
		Long:  "Delete the server-side session and forget cached reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if _, err := client.Login(ctx); err != nil {
				return fmt.Errorf("logging in: %w", err)
			}

			if err := client.Logout(ctx); err != nil {
				return fmt.Errorf("logging out: %w", err)
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}

// saveConnection persists the server and username to ~/.jira/config.yml so
// later invocations only prompt for the secret.
func saveConnection(server, username string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".jira")
	if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settings := map[string]string{
		"server": server,
	}
	if username != "" {
		settings["user"] = username
	}
	if mode := viper.GetString("auth_mode"); mode != "" {
		settings["auth_mode"] = mode
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	configFile := filepath.Join(configDir, "config.yml")
	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
