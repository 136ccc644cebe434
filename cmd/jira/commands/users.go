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

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Look up users",
		Long:    "Look up user accounts and list assignable users",
	}

	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersAssignableCommand())

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USERNAME",
		Short: "Get a user",
		Long:  "Fetch a single user by username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("getting user: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(user)
			case OutputFormatYAML:
				return renderYAML(user)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Name", user.Name)
				_ = table.Append("Display Name", user.DisplayName)
				_ = table.Append("Email", user.EmailAddress)
				_ = table.Append("Active", fmt.Sprintf("%t", user.Active))
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newUsersAssignableCommand() *cobra.Command {
	var issueKey string

	cmd := &cobra.Command{
		Use:   "assignable PROJECT_KEY",
		Short: "List assignable users",
		Long:  "List every user assignable in a project, or to a single issue with --issue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			var users []jira.User

			switch {
			case issueKey != "":
				found, err := client.Users().AssignableToIssue(ctx, issueKey, nil)
				if err != nil {
					return fmt.Errorf("listing assignable users: %w", err)
				}

				users = found
			case len(args) == 1:
				found, err := client.Users().AssignableToProject(ctx, args[0], nil)
				if err != nil {
					return fmt.Errorf("listing assignable users: %w", err)
				}

				users = found
			default:
				return ErrIssueKeyRequired
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(users)
			case OutputFormatYAML:
				return renderYAML(users)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Display Name", "Email")
				for _, user := range users {
					_ = table.Append(user.Name, user.DisplayName, user.EmailAddress)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&issueKey, "issue", "", "list users assignable to this issue instead")

	return cmd
}
