package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewProjectsCommand creates the projects command group
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		Long:    "List projects and inspect their components, versions, and issue types",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsComponentsCommand())
	cmd.AddCommand(newProjectsVersionsCommand())
	cmd.AddCommand(newIssueTypesCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List all projects visible to the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			projects, err := client.Projects().List(ctx)
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(projects)
			case OutputFormatYAML:
				return renderYAML(projects)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Name", "ID")
				for _, project := range projects {
					_ = table.Append(project.Key, project.Name, project.ID)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_KEY",
		Short: "Get a project",
		Long:  "Fetch a single project by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("getting project: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(project)
			case OutputFormatYAML:
				return renderYAML(project)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Key", project.Key)
				_ = table.Append("Name", project.Name)
				_ = table.Append("ID", project.ID)
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newProjectsComponentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "components PROJECT_KEY",
		Short: "List project components",
		Long:  "List the components of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			components, err := client.Projects().Components(ctx, args[0])
			if err != nil {
				return fmt.Errorf("listing components: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(components)
			case OutputFormatYAML:
				return renderYAML(components)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Description")
				for _, component := range components {
					_ = table.Append(component.ID, component.Name, component.Description)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newProjectsVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions PROJECT_KEY",
		Short: "List project versions",
		Long:  "List the versions of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			versions, err := client.Projects().Versions(ctx, args[0])
			if err != nil {
				return fmt.Errorf("listing versions: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(versions)
			case OutputFormatYAML:
				return renderYAML(versions)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Released", "Archived")
				for _, version := range versions {
					_ = table.Append(version.ID, version.Name,
						fmt.Sprintf("%t", version.Released), fmt.Sprintf("%t", version.Archived))
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newIssueTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "issue-types",
		Short: "List issue types",
		Long:  "List the issue types defined on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			issueTypes, err := client.Projects().IssueTypes(ctx)
			if err != nil {
				return fmt.Errorf("listing issue types: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(issueTypes)
			case OutputFormatYAML:
				return renderYAML(issueTypes)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Subtask")
				for _, issueType := range issueTypes {
					_ = table.Append(issueType.ID, issueType.Name, fmt.Sprintf("%t", issueType.Subtask))
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
