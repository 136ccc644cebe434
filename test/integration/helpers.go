//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint string
	Username string
	Token    string
	AuthMode string
	JiraPath string
	Project  string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	authMode := os.Getenv("JIRA_IT_AUTH_MODE")
	if authMode == "" {
		authMode = "token"
	}

	project := os.Getenv("JIRA_IT_PROJECT")
	if project == "" {
		project = "ITEST"
	}

	return &TestConfig{
		Endpoint: os.Getenv("JIRA_IT_ENDPOINT"),
		Username: os.Getenv("JIRA_IT_USER"),
		Token:    os.Getenv("JIRA_IT_TOKEN"),
		AuthMode: authMode,
		JiraPath: getJiraPath(),
		Project:  project,
		Verbose:  os.Getenv("JIRA_IT_VERBOSE") == "true",
	}
}

// getJiraPath determines the path to the jira binary
func getJiraPath() string {
	if path := os.Getenv("JIRA_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../jira",
		"./jira",
		"../jira",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "jira" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Endpoint == "" {
		t.Skip("JIRA_IT_ENDPOINT not set, skipping integration test")
	}

	if config.Username == "" || config.Token == "" {
		t.Skip("JIRA_IT_USER or JIRA_IT_TOKEN not set, skipping integration test")
	}

	if _, err := os.Stat(config.JiraPath); os.IsNotExist(err) {
		t.Skipf("jira binary not found at %s, skipping integration test", config.JiraPath)
	}
}

// CommandRunner provides utilities for running jira commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a jira command and returns output. The server and
// credentials are always passed explicitly so the runner never depends on a
// config file left behind by an earlier run.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append([]string{
		"--server", runner.config.Endpoint,
		"--user", runner.config.Username,
		"--token", runner.config.Token,
		"--auth-mode", runner.config.AuthMode,
	}, args...)

	cmd := exec.Command(runner.config.JiraPath, full...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.JiraPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunWithInput executes a jira command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	full := append([]string{
		"--server", runner.config.Endpoint,
		"--user", runner.config.Username,
		"--token", runner.config.Token,
		"--auth-mode", runner.config.AuthMode,
	}, args...)

	cmd := exec.Command(runner.config.JiraPath, full...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running with input: %s %s", runner.config.JiraPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupIssue attempts to delete a test issue
func (runner *CommandRunner) CleanupIssue(key string) {
	stdout, stderr, err := runner.Run("issues", "delete", key, "--force")
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for issue %s: %s\nStderr: %s", key, stdout, stderr)
	}
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return // Looks like YAML
	}
	t.Errorf("Output does not appear to be YAML: %s", output)
}
