package cli

import (
	"github.com/spf13/cobra"

	"github.com/halstead-studio/studioops/internal/auth"
	"github.com/halstead-studio/studioops/internal/payments"
	"github.com/halstead-studio/studioops/internal/service"
	"github.com/halstead-studio/studioops/internal/workshop"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Catalog    service.CatalogService
	Sprints    service.SprintService
	Versions   service.VersionService
	Settlement service.SettlementService

	// Webhook is the payment processor endpoint mounted by serve.
	Webhook *payments.WebhookHandler

	// Workshop is the agenda collaborator, used for preflight checks.
	Workshop workshop.Generator

	// Actor is the local operator's identity applied to every command.
	Actor auth.Identity

	// Addr is the listen address for serve.
	Addr string
}

// NewRootCmd creates the top-level "studioops" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "studioops",
		Short: "Sprint composition and settlement for the studio",
	}

	root.AddCommand(
		newCatalogCmd(app),
		newSprintCmd(app),
		newVersionCmd(app),
		newInvoiceCmd(app),
		newServeCmd(app),
	)

	return root
}
