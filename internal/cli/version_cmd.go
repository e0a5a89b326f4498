package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halstead-studio/studioops/internal/cli/formatter"
)

func newVersionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Manage deliverable versions",
	}

	cmd.AddCommand(
		newVersionCreateCmd(app),
		newVersionListCmd(app),
	)

	return cmd
}

func newVersionCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <item-id> <major.minor>",
		Short: "Cut an immutable snapshot of a deliverable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Versions.CreateVersion(context.Background(), app.Actor, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Cut version %s by %s\n", v.Version, v.Author)
			return nil
		},
	}
}

func newVersionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <item-id>",
		Short: "List a deliverable's versions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := app.Versions.ListVersions(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatVersions(versions))
			return nil
		},
	}
}
