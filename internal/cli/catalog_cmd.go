package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halstead-studio/studioops/internal/cli/formatter"
	"github.com/halstead-studio/studioops/internal/domain"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the deliverable catalog",
	}

	cmd.AddCommand(
		newCatalogAddCmd(app),
		newCatalogListCmd(app),
		newCatalogRetireCmd(app),
		newCatalogPackageCmd(app),
	)

	return cmd
}

func newCatalogPackageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package",
		Short: "Manage deliverable packages",
	}

	cmd.AddCommand(
		newPackageAddCmd(app),
		newPackageListCmd(app),
		newPackageRetireCmd(app),
	)

	return cmd
}

func newPackageAddCmd(app *App) *cobra.Command {
	var name, description string
	var entries []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a deliverable package",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := &domain.Package{Name: name, Description: description}
			for i, spec := range entries {
				entry, err := parsePackageEntry(spec, i)
				if err != nil {
					return err
				}
				pkg.Entries = append(pkg.Entries, entry)
			}
			if err := app.Catalog.CreatePackage(context.Background(), pkg); err != nil {
				return err
			}
			fmt.Printf("Added package %q (%s)\n", pkg.Name, pkg.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Package name")
	cmd.Flags().StringVar(&description, "description", "", "Package description")
	cmd.Flags().StringArrayVar(&entries, "entry", nil,
		"Package entry as deliverable-id[:complexity[:quantity]] (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("entry")

	return cmd
}

// parsePackageEntry parses "deliverable-id[:complexity[:quantity]]".
func parsePackageEntry(spec string, orderIndex int) (domain.PackageEntry, error) {
	entry := domain.PackageEntry{OrderIndex: orderIndex, DefaultComplexity: 1.0, Quantity: 1}

	parts := strings.Split(spec, ":")
	if parts[0] == "" || len(parts) > 3 {
		return entry, fmt.Errorf("invalid package entry %q", spec)
	}
	entry.DeliverableID = parts[0]

	if len(parts) > 1 {
		c, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return entry, fmt.Errorf("invalid complexity in package entry %q", spec)
		}
		entry.DefaultComplexity = c
	}
	if len(parts) > 2 {
		q, err := strconv.Atoi(parts[2])
		if err != nil {
			return entry, fmt.Errorf("invalid quantity in package entry %q", spec)
		}
		entry.Quantity = q
	}
	return entry, nil
}

func newPackageListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deliverable packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := app.Catalog.ListPackages(context.Background(), all)
			if err != nil {
				return err
			}
			if len(packages) == 0 {
				fmt.Println("No packages defined.")
				return nil
			}

			rows := make([][]string, 0, len(packages))
			for _, p := range packages {
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					p.Name,
					fmt.Sprintf("%d deliverables", len(p.Entries)),
				})
			}
			fmt.Println(formatter.RenderTable([]string{"ID", "Name", "Contents"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include retired packages")

	return cmd
}

func newPackageRetireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "retire <package-id>",
		Short: "Retire a deliverable package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.DeactivatePackage(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Retired.")
			return nil
		},
	}
}

func newCatalogAddCmd(app *App) *cobra.Command {
	var name, category, scope string
	var points, hours, price float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog deliverable",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := &domain.Deliverable{
				Name:       name,
				Category:   category,
				BasePoints: points,
				BaseHours:  hours,
				BasePrice:  price,
				Scope:      scope,
			}
			if err := app.Catalog.CreateDeliverable(context.Background(), d); err != nil {
				return err
			}
			fmt.Printf("Added %q to the catalog (%s)\n", d.Name, d.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Deliverable name")
	cmd.Flags().StringVar(&category, "category", "generic", "Category")
	cmd.Flags().Float64Var(&points, "points", 0, "Base point value")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Base fixed hours")
	cmd.Flags().Float64Var(&price, "price", 0, "Base fixed price")
	cmd.Flags().StringVar(&scope, "scope", "", "Scope description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("points")

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog deliverables",
		RunE: func(cmd *cobra.Command, args []string) error {
			deliverables, err := app.Catalog.ListDeliverables(context.Background(), all)
			if err != nil {
				return err
			}
			if len(deliverables) == 0 {
				fmt.Println("Catalog is empty.")
				return nil
			}

			rows := make([][]string, 0, len(deliverables))
			for _, d := range deliverables {
				rows = append(rows, []string{
					formatter.TruncID(d.ID),
					d.Name,
					d.Category,
					formatter.Points(d.BasePoints),
					formatter.Money(d.BasePrice),
				})
			}
			fmt.Println(formatter.RenderTable(
				[]string{"ID", "Name", "Category", "Points", "Price"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include retired deliverables")

	return cmd
}

func newCatalogRetireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "retire <deliverable-id>",
		Short: "Retire a catalog deliverable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.DeactivateDeliverable(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Retired.")
			return nil
		},
	}
}
