package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewIssuesCommand creates the issues command group
func NewIssuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue"},
		Short:   "Manage issues",
		Long:    "Get, create, update, comment on, and transition issues",
	}

	cmd.AddCommand(newIssuesGetCommand())
	cmd.AddCommand(newIssuesCreateCommand())
	cmd.AddCommand(newIssuesAssignCommand())
	cmd.AddCommand(newIssuesCommentCommand())
	cmd.AddCommand(newIssuesCommentsCommand())
	cmd.AddCommand(newIssuesTransitionsCommand())
	cmd.AddCommand(newIssuesTransitionCommand())
	cmd.AddCommand(newIssuesWorklogsCommand())
	cmd.AddCommand(newIssuesDeleteCommand())

	return cmd
}

func newIssuesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ISSUE_KEY",
		Short: "Get an issue",
		Long:  "Fetch a single issue by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			issue, err := client.Issues().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("getting issue: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(issue)
			case OutputFormatYAML:
				return renderYAML(issue)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Key", issue.Key)
				_ = table.Append("Summary", issueField(issue, "summary"))
				_ = table.Append("Status", issueField(issue, "status.name"))
				_ = table.Append("Type", issueField(issue, "issuetype.name"))
				_ = table.Append("Assignee", issueField(issue, "assignee.displayName"))
				_ = table.Append("Reporter", issueField(issue, "reporter.displayName"))
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newIssuesCreateCommand() *cobra.Command {
	var (
		projectKey string
		issueType  string
		summary    string
		descr      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an issue",
		Long:  "Create a new issue in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			request := &jira.IssueRequest{
				Fields: map[string]interface{}{
					"project":   map[string]interface{}{"key": projectKey},
					"issuetype": map[string]interface{}{"name": issueType},
					"summary":   summary,
				},
			}
			if descr != "" {
				request.Fields["description"] = descr
			}

			created, err := client.Issues().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("creating issue: %w", err)
			}

			fmt.Printf("Created issue %s\n", created.Key)

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectKey, "project", "p", "", "project key (required)")
	cmd.Flags().StringVar(&issueType, "type", "Task", "issue type name")
	cmd.Flags().StringVar(&summary, "summary", "", "issue summary (required)")
	cmd.Flags().StringVar(&descr, "description", "", "issue description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("summary")

	return cmd
}

func newIssuesAssignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assign ISSUE_KEY USERNAME",
		Short: "Assign an issue",
		Long:  "Assign an issue to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Issues().Assign(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("assigning issue: %w", err)
			}

			fmt.Printf("Assigned %s to %s\n", args[0], args[1])

			return nil
		},
	}
}

func newIssuesCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comment ISSUE_KEY BODY",
		Short: "Add a comment",
		Long:  "Add a comment to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			comment, err := client.Issues().AddComment(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("adding comment: %w", err)
			}

			fmt.Printf("Added comment %s to %s\n", comment.ID, args[0])

			return nil
		},
	}
}

func newIssuesCommentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comments ISSUE_KEY",
		Short: "List comments",
		Long:  "List all comments on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			comments, err := client.Issues().Comments(ctx, args[0])
			if err != nil {
				return fmt.Errorf("listing comments: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(comments)
			case OutputFormatYAML:
				return renderYAML(comments)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Author", "Created", "Body")
				for _, comment := range comments.Comments {
					_ = table.Append(comment.ID, comment.Author.DisplayName, comment.Created, comment.Body)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newIssuesTransitionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transitions ISSUE_KEY",
		Short: "List available transitions",
		Long:  "List the workflow transitions currently available for an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			transitions, err := client.Issues().Transitions(ctx, args[0])
			if err != nil {
				return fmt.Errorf("listing transitions: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(transitions)
			case OutputFormatYAML:
				return renderYAML(transitions)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "To")
				for _, transition := range transitions {
					_ = table.Append(transition.ID, transition.Name, transition.To.Name)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newIssuesTransitionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transition ISSUE_KEY TRANSITION_NAME",
		Short: "Transition an issue",
		Long:  "Move an issue through a workflow transition by name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Issues().TransitionByName(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("transitioning issue: %w", err)
			}

			fmt.Printf("Transitioned %s via '%s'\n", args[0], args[1])

			return nil
		},
	}
}

func newIssuesWorklogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worklogs ISSUE_KEY",
		Short: "List worklogs",
		Long:  "List all worklogs on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			worklogs, err := client.Issues().Worklogs(ctx, args[0])
			if err != nil {
				return fmt.Errorf("listing worklogs: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(worklogs)
			case OutputFormatYAML:
				return renderYAML(worklogs)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Author", "Started", "Time Spent")
				for _, worklog := range worklogs.Worklogs {
					_ = table.Append(worklog.ID, worklog.Author.DisplayName, worklog.Started, worklog.TimeSpent)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newIssuesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ISSUE_KEY",
		Short: "Delete an issue",
		Long:  "Delete an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if !force {
				fmt.Printf("Really delete issue '%s'? (y/N): ", key)
				var response string
				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Issues().Delete(ctx, key); err != nil {
				return fmt.Errorf("deleting issue: %w", err)
			}

			fmt.Printf("Deleted issue '%s'\n", key)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}
