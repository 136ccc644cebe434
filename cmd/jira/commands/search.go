package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	var (
		fields   []string
		allPages bool
		limit    int
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "search JQL",
		Short: "Search issues with JQL",
		Long:  "Run a JQL query and display the matching issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jql := strings.TrimSpace(args[0])
			if jql == "" {
				return ErrJQLRequired
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			var issues []jira.Issue

			if allPages {
				opts := &jira.PaginationOptions{Limit: limit, MaxPages: maxPages}

				issues, err = client.Search().SearchAll(ctx, jql, fields, opts)
				if err != nil {
					return fmt.Errorf("searching issues: %w", err)
				}
			} else {
				opts := jira.NewSearchOptions(jql).WithFields(fields...)
				if limit > 0 {
					opts = opts.WithWindow(0, limit)
				}

				result, err := client.Search().Search(ctx, opts)
				if err != nil {
					return fmt.Errorf("searching issues: %w", err)
				}

				issues = result.Issues
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(issues)
			case OutputFormatYAML:
				return renderYAML(issues)
			default:
				if len(issues) == 0 {
					fmt.Println("No issues found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Type", "Status", "Summary")
				for i := range issues {
					issue := &issues[i]
					_ = table.Append(issue.Key, issueField(issue, "issuetype.name"),
						issueField(issue, "status.name"), issueField(issue, "summary"))
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", []string{"summary", "status", "issuetype"}, "fields to fetch")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of issues to return")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "abort after this many pages when fetching all")

	return cmd
}
