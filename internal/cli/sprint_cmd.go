package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/halstead-studio/studioops/internal/cli/formatter"
	"github.com/halstead-studio/studioops/internal/domain"
)

func newSprintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage client sprints",
	}

	cmd.AddCommand(
		newSprintCreateCmd(app),
		newSprintListCmd(app),
		newSprintInspectCmd(app),
		newSprintAddCmd(app),
		newSprintRemoveCmd(app),
		newSprintComplexityCmd(app),
		newSprintEditCmd(app),
		newSprintScheduleCmd(app),
		newSprintAttachCmd(app),
		newSprintShareCmd(app),
		newSprintStatusCmd(app),
		newSprintWorkshopCmd(app),
		newSprintLogCmd(app),
	)

	return cmd
}

func newSprintCreateCmd(app *App) *cobra.Command {
	var client, packageID string
	var weeks int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sprint draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			sprint, err := app.Sprints.Create(context.Background(), app.Actor, client, weeks, packageID)
			if err != nil {
				return err
			}
			fmt.Printf("Created sprint %s for %s (share token %s)\n", sprint.ID, sprint.ClientName, sprint.ShareToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "Sprint length in weeks")
	cmd.Flags().StringVar(&packageID, "package", "", "Seed composition from this package")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func newSprintListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			sprints, err := app.Sprints.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSprintList(sprints))
			return nil
		},
	}
}

func newSprintInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <sprint-id>",
		Short: "Show a sprint with its composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprint, err := app.Sprints.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			items, err := app.Sprints.ListDeliverables(ctx, sprint.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSprintDetail(sprint, items))
			return nil
		},
	}
}

func newSprintAddCmd(app *App) *cobra.Command {
	var complexity float64
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <sprint-id> <deliverable-id>",
		Short: "Add a catalog deliverable to a sprint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Sprints.AddDeliverable(context.Background(), app.Actor, args[0], args[1], complexity, quantity)
			if err != nil {
				return err
			}
			fmt.Printf("Added %q: %s, %s, %s\n", item.Name,
				formatter.Points(item.AdjustedPoints),
				formatter.Hours(item.AdjustedHours),
				formatter.Money(item.AdjustedPrice))
			return nil
		},
	}

	cmd.Flags().Float64Var(&complexity, "complexity", 1.0, "Complexity multiplier")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "Quantity")

	return cmd
}

func newSprintRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <sprint-id> <item-id>",
		Short: "Remove a deliverable from a sprint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sprints.RemoveDeliverable(context.Background(), app.Actor, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}

func newSprintComplexityCmd(app *App) *cobra.Command {
	var complexity float64

	cmd := &cobra.Command{
		Use:   "complexity <sprint-id> <item-id>",
		Short: "Adjust a line item's complexity multiplier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Sprints.UpdateComplexity(context.Background(), app.Actor, args[0], args[1], complexity)
			if err != nil {
				return err
			}
			fmt.Printf("Repriced %q: %s, %s\n", item.Name,
				formatter.Points(item.AdjustedPoints),
				formatter.Money(item.AdjustedPrice))
			return nil
		},
	}

	cmd.Flags().Float64Var(&complexity, "to", 1.0, "New complexity multiplier")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newSprintEditCmd(app *App) *cobra.Command {
	var content, notes, deliveryURL string

	cmd := &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Edit a line item's content, notes, or delivery URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if cmd.Flags().Changed("content") {
				if err := app.Sprints.UpdateContent(ctx, app.Actor, args[0], content); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("notes") {
				if err := app.Sprints.UpdateNotes(ctx, app.Actor, args[0], notes); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("delivery-url") {
				if err := app.Sprints.UpdateDeliveryURL(ctx, app.Actor, args[0], deliveryURL); err != nil {
					return err
				}
			}
			fmt.Println("Updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Deliverable content")
	cmd.Flags().StringVar(&notes, "notes", "", "Internal notes")
	cmd.Flags().StringVar(&deliveryURL, "delivery-url", "", "External delivery URL")

	return cmd
}

func newSprintScheduleCmd(app *App) *cobra.Command {
	var startStr, endStr string

	cmd := &cobra.Command{
		Use:   "schedule <sprint-id>",
		Short: "Set a sprint's start and end dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startsOn, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", startStr)
			}
			endsOn, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid end date %q (expected YYYY-MM-DD)", endStr)
			}
			if err := app.Sprints.Schedule(context.Background(), app.Actor, args[0], startsOn, endsOn); err != nil {
				return err
			}
			fmt.Printf("Scheduled %s to %s\n", startStr, endStr)
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newSprintShareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "share <token>",
		Short: "Show the client-facing view for a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sprint, err := app.Sprints.GetByShareToken(ctx, args[0])
			if err != nil {
				return err
			}
			items, err := app.Sprints.ListDeliverables(ctx, sprint.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSprintDetail(sprint, items))
			return nil
		},
	}
}

func newSprintAttachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <item-id> <file>",
		Short: "Attach a file to a deliverable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %q: %w", args[1], err)
			}
			defer f.Close()

			stored, err := app.Sprints.AttachFile(context.Background(), app.Actor, args[0], f.Name(), f)
			if err != nil {
				return err
			}
			fmt.Printf("Stored attachment at %s\n", stored)
			return nil
		},
	}
}

func newSprintStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <sprint-id> <draft|studio_review|pending_client|complete>",
		Short: "Move a sprint to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to := domain.SprintStatus(args[1])
			if err := app.Sprints.Transition(context.Background(), app.Actor, args[0], to); err != nil {
				return err
			}
			fmt.Printf("Sprint is now %s\n", to)
			return nil
		},
	}
}

func newSprintWorkshopCmd(app *App) *cobra.Command {
	var clientContext string
	var remove bool

	cmd := &cobra.Command{
		Use:   "workshop <sprint-id>",
		Short: "Generate or remove the workshop agenda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if remove {
				if err := app.Sprints.RemoveWorkshop(ctx, app.Actor, args[0]); err != nil {
					return err
				}
				fmt.Println("Workshop agenda removed; sprint returned to studio review.")
				return nil
			}

			// Preflight so an unreachable collaborator fails with a clear
			// message before any context is assembled.
			if app.Workshop != nil && !app.Workshop.Available(ctx) {
				return fmt.Errorf("agenda collaborator is not reachable; check STUDIOOPS_AGENDA_* settings")
			}

			sprint, err := app.Sprints.GenerateWorkshop(ctx, app.Actor, args[0], clientContext)
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header("Workshop Agenda"))
			fmt.Println(sprint.Agenda)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientContext, "context", "", "Client context for the agenda")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the agenda instead of generating")

	return cmd
}

func newSprintLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log <sprint-id>",
		Short: "Show a sprint's change log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Sprints.ChangeLog(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatChangeLog(entries))
			return nil
		},
	}
}
