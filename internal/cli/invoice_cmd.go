package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halstead-studio/studioops/internal/cli/formatter"
	"github.com/halstead-studio/studioops/internal/domain"
)

func newInvoiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Settlement and invoices",
	}

	cmd.AddCommand(
		newInvoicePlanCmd(app),
		newInvoiceGenerateCmd(app),
		newInvoiceListCmd(app),
	)

	return cmd
}

func newInvoicePlanCmd(app *App) *cobra.Command {
	var total, upfrontPct, equityPct float64
	var deferred bool
	var missPolicy string

	cmd := &cobra.Command{
		Use:   "plan <sprint-id>",
		Short: "Record a budget plan for a sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := &domain.BudgetPlan{
				SprintID:   args[0],
				TotalValue: total,
				UpfrontPct: upfrontPct,
				EquityPct:  equityPct,
				Deferred:   deferred,
				MissPolicy: missPolicy,
			}
			if err := app.Settlement.CreateBudgetPlan(context.Background(), app.Actor, plan); err != nil {
				return err
			}
			fmt.Printf("Plan recorded: upfront %s, equity %s",
				formatter.Money(plan.UpfrontAmount), formatter.Money(plan.EquityAmount))
			if plan.Deferred {
				fmt.Printf(", deferred %s\n", formatter.Money(plan.DeferredAmount))
			} else {
				fmt.Printf(", on completion %s\n", formatter.Money(plan.CompletionAmount))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&total, "total", 0, "Total project value")
	cmd.Flags().Float64Var(&upfrontPct, "upfront", 0, "Upfront fraction [0, 1]")
	cmd.Flags().Float64Var(&equityPct, "equity", 0, "Equity fraction [0, 1]")
	cmd.Flags().BoolVar(&deferred, "deferred", false, "Deferred compensation plan")
	cmd.Flags().StringVar(&missPolicy, "miss-policy", "", "Milestone miss policy")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func newInvoiceGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <sprint-id>",
		Short: "Generate invoices from the latest budget plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := app.Settlement.GenerateInvoices(context.Background(), app.Actor, args[0])
			if err != nil {
				return err
			}
			if !outcome.Created {
				fmt.Println(formatter.Dim("Invoices already exist for this sprint; nothing generated."))
			}
			fmt.Println(formatter.FormatInvoices(outcome.Invoices))
			return nil
		},
	}
}

func newInvoiceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <sprint-id>",
		Short: "List a sprint's invoices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := app.Settlement.ListInvoices(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatInvoices(invoices))
			return nil
		},
	}
}
