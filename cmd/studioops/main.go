package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/halstead-studio/studioops/internal/auth"
	"github.com/halstead-studio/studioops/internal/cli"
	"github.com/halstead-studio/studioops/internal/config"
	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/payments"
	"github.com/halstead-studio/studioops/internal/pricing"
	"github.com/halstead-studio/studioops/internal/repository"
	"github.com/halstead-studio/studioops/internal/service"
	"github.com/halstead-studio/studioops/internal/storage"
	"github.com/halstead-studio/studioops/internal/workshop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("STUDIOOPS_CONFIG"))
	if err != nil {
		return err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".studioops", "studioops.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Text logs on a terminal, JSON otherwise.
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	observer := service.NewSlogUseCaseObserver(logger)

	// Wire repositories
	deliverableRepo := repository.NewSQLiteDeliverableRepo(database)
	packageRepo := repository.NewSQLitePackageRepo(database)
	sprintRepo := repository.NewSQLiteSprintRepo(database)
	itemRepo := repository.NewSQLiteSprintDeliverableRepo(database)
	versionRepo := repository.NewSQLiteVersionRepo(database)
	planRepo := repository.NewSQLiteBudgetPlanRepo(database)
	invoiceRepo := repository.NewSQLiteInvoiceRepo(database)
	genRepo := repository.NewSQLiteAgendaGenerationRepo(database)
	changeRepo := repository.NewSQLiteChangeLogRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Agenda collaborator
	agendaCfg := workshop.LoadConfig()
	var agendaObserver workshop.Observer = workshop.NoopObserver{}
	if agendaCfg.LogCalls {
		agendaObserver = workshop.NewLogObserver(os.Stderr)
	}
	generator := workshop.NewHTTPGenerator(agendaCfg, agendaObserver)

	store := storage.NewDirStore(cfg.AttachmentDir)

	params := service.PricingParams{
		Ratios: pricingRatios(cfg),
		ItemBounds: boundsOf(
			cfg.Pricing.ItemComplexityMin, cfg.Pricing.ItemComplexityMax),
		TemplateBounds: boundsOf(
			cfg.Pricing.TemplateComplexityMin, cfg.Pricing.TemplateComplexityMax),
	}

	// The CLI runs as the local operator; the provider is where a real
	// request-scoped resolver would slot in.
	provider := auth.StaticProvider{Identity: auth.Identity{
		AccountID: "local-operator",
		Email:     operatorEmail(),
		Role:      auth.RoleOwner,
	}}
	actor, err := provider.Resolve(context.Background(), nil)
	if err != nil {
		return err
	}

	app := &cli.App{
		Catalog: service.NewCatalogService(deliverableRepo, packageRepo, params.TemplateBounds),
		Sprints: service.NewSprintService(
			sprintRepo, itemRepo, deliverableRepo, packageRepo, changeRepo, genRepo,
			uow, generator, store, params, observer),
		Versions:   service.NewVersionService(versionRepo, uow, observer),
		Settlement: service.NewSettlementService(sprintRepo, planRepo, invoiceRepo, uow, observer),
		Webhook: payments.NewWebhookHandler(
			cfg.Webhook.Secret,
			payments.NewReconciler(uow, logger),
			logger,
		),
		Workshop: generator,
		Actor:    actor,
		Addr:     cfg.Server.Addr,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func pricingRatios(cfg config.Config) pricing.Ratios {
	return pricing.Ratios{
		HoursPerPoint: cfg.Pricing.HoursPerPoint,
		PricePerPoint: cfg.Pricing.PricePerPoint,
	}
}

func boundsOf(min, max float64) pricing.Bounds {
	return pricing.Bounds{Min: min, Max: max}
}

func operatorEmail() string {
	if v := os.Getenv("STUDIOOPS_OPERATOR"); v != "" {
		return v
	}
	return "operator@localhost"
}
