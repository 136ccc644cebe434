package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewBoardsCommand creates the boards command group
func NewBoardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board"},
		Short:   "Manage agile boards",
		Long:    "List boards, their sprints, and their issues",
	}

	cmd.AddCommand(newBoardsListCommand())
	cmd.AddCommand(newBoardsSprintsCommand())
	cmd.AddCommand(newBoardsIssuesCommand())

	return cmd
}

func newBoardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards",
		Long:  "List all agile boards visible to the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			boards, err := client.Boards().List(ctx, nil)
			if err != nil {
				return fmt.Errorf("listing boards: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(boards)
			case OutputFormatYAML:
				return renderYAML(boards)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Type")
				for _, board := range boards {
					_ = table.Append(strconv.Itoa(board.ID), board.Name, board.Type)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newBoardsSprintsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sprints BOARD_ID",
		Short: "List sprints",
		Long:  "List the sprints of a scrum board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", ErrBoardIDRequired, args[0])
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			sprints, err := client.Boards().Sprints(ctx, boardID, nil)
			if err != nil {
				return fmt.Errorf("listing sprints: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(sprints)
			case OutputFormatYAML:
				return renderYAML(sprints)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "State", "Start", "End")
				for _, sprint := range sprints {
					_ = table.Append(strconv.Itoa(sprint.ID), sprint.Name, sprint.State,
						sprint.StartDate, sprint.EndDate)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newBoardsIssuesCommand() *cobra.Command {
	var jql string

	cmd := &cobra.Command{
		Use:   "issues BOARD_ID",
		Short: "List board issues",
		Long:  "List the issues on a board, optionally filtered by JQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", ErrBoardIDRequired, args[0])
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			issues, err := client.Boards().Issues(ctx, boardID, jql, nil)
			if err != nil {
				return fmt.Errorf("listing board issues: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(issues)
			case OutputFormatYAML:
				return renderYAML(issues)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Status", "Summary")
				for i := range issues {
					issue := &issues[i]
					_ = table.Append(issue.Key, issueField(issue, "status.name"), issueField(issue, "summary"))
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&jql, "jql", "", "JQL filter")

	return cmd
}
