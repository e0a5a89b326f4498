package formatter

import (
	"fmt"

	"github.com/halstead-studio/studioops/internal/domain"
)

// FormatInvoices renders a sprint's invoice lines in sort order.
func FormatInvoices(invoices []*domain.Invoice) string {
	if len(invoices) == 0 {
		return Dim("No invoices generated.")
	}

	rows := make([][]string, 0, len(invoices))
	var total float64
	for _, inv := range invoices {
		ref := inv.ProcessorRef
		if ref == "" {
			ref = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(inv.ID),
			inv.Label,
			Money(inv.Amount),
			InvoiceStatusPill(inv.Status),
			ref,
		})
		total += inv.Amount
	}
	table := RenderTable([]string{"ID", "Label", "Amount", "Status", "Ref"}, rows)
	return table + "\n" + Bold(fmt.Sprintf("Total: %s", Money(total))) + "\n"
}
