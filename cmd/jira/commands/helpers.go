package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/issuetrack-io/jira-client/pkg/jiraclient"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"
)

// Common static errors used throughout the commands package.
var (
	ErrServerRequired   = errors.New("server URL is required (use --server or set it in the config)")
	ErrIssueKeyRequired = errors.New("issue key is required")
	ErrJQLRequired      = errors.New("JQL query is required")
	ErrBoardIDRequired  = errors.New("board ID is required")
)

// promptProvider asks for missing credentials on the terminal. The password
// is read without echo.
type promptProvider struct{}

func (promptProvider) Username(_ context.Context) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")

	username, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading username: %w", err)
	}

	return strings.TrimSpace(username), nil
}

func (promptProvider) Secret(_ context.Context, username string) (string, error) {
	fmt.Printf("Password for %s: ", username)

	secret, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	fmt.Println()

	return string(secret), nil
}

// createClient builds a client from the effective flag/config/env settings.
func createClient(ctx context.Context) (jira.Client, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, ErrServerRequired
	}

	config := &jira.Config{
		BaseURL:     server,
		AuthMode:    jira.AuthMode(viper.GetString("auth_mode")),
		Username:    viper.GetString("user"),
		Token:       viper.GetString("token"),
		Credentials: promptProvider{},
		Debug:       viper.GetBool("verbose"),
	}

	client, err := jiraclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderJSON writes v to stdout as indented JSON.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}

	return nil
}

// renderYAML writes v to stdout as YAML.
func renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding to YAML: %w", err)
	}

	return nil
}

// issueField digs a string out of an issue's opaque field map, descending
// into nested objects for dotted paths like "status.name".
func issueField(issue *jira.Issue, path string) string {
	var current interface{} = issue.Fields

	for _, part := range strings.Split(path, ".") {
		object, ok := current.(map[string]interface{})
		if !ok {
			return NotAvailable
		}

		current, ok = object[part]
		if !ok || current == nil {
			return NotAvailable
		}
	}

	if s, ok := current.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", current)
}
