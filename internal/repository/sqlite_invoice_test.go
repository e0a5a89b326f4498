package repository

import (
	"context"
	"testing"
	"time"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInvoice(t *testing.T, db interface {
	Create(ctx context.Context, inv *domain.Invoice) error
}, sprintID, id, ref string) *domain.Invoice {
	t.Helper()
	now := time.Now().UTC()
	inv := &domain.Invoice{
		ID:           id,
		SprintID:     sprintID,
		Label:        "Deposit",
		Amount:       500,
		Status:       domain.InvoicePending,
		SortOrder:    0,
		ProcessorRef: ref,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(context.Background(), inv))
	return inv
}

func TestInvoiceRepo_CreateAndList_SortOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	sprints := NewSQLiteSprintRepo(db)
	invoices := NewSQLiteInvoiceRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSprint("Acme Co")
	require.NoError(t, sprints.Create(ctx, s))

	now := time.Now().UTC()
	for i, label := range []string{"Deposit", "Final Payment"} {
		require.NoError(t, invoices.Create(ctx, &domain.Invoice{
			ID: label, SprintID: s.ID, Label: label, Amount: 500,
			Status: domain.InvoicePending, SortOrder: i,
			CreatedAt: now, UpdatedAt: now,
		}))
	}

	list, err := invoices.ListBySprint(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Deposit", list[0].Label)
	assert.Equal(t, "Final Payment", list[1].Label)

	count, err := invoices.CountBySprint(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInvoiceRepo_GetByProcessorRef_ExactMatchOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	sprints := NewSQLiteSprintRepo(db)
	invoices := NewSQLiteInvoiceRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSprint("Acme Co")
	require.NoError(t, sprints.Create(ctx, s))

	seedInvoice(t, invoices, s.ID, "inv1", "cs_12345")
	seedInvoice(t, invoices, s.ID, "inv2", "cs_123")

	// Exact equality: "cs_123" must not resolve to the invoice whose ref
	// merely contains it.
	fetched, err := invoices.GetByProcessorRef(ctx, "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "inv2", fetched.ID)

	_, err = invoices.GetByProcessorRef(ctx, "cs_12")
	assert.ErrorIs(t, err, ErrNotFound)

	// Empty refs never match anything, even rows with empty processor_ref.
	_, err = invoices.GetByProcessorRef(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceRepo_Update_Status(t *testing.T) {
	db := testutil.NewTestDB(t)
	sprints := NewSQLiteSprintRepo(db)
	invoices := NewSQLiteInvoiceRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSprint("Acme Co")
	require.NoError(t, sprints.Create(ctx, s))
	inv := seedInvoice(t, invoices, s.ID, "inv1", "pi_777")

	inv.Status = domain.InvoicePaid
	inv.UpdatedAt = time.Now().UTC()
	require.NoError(t, invoices.Update(ctx, inv))

	fetched, err := invoices.GetByID(ctx, "inv1")
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, fetched.Status)
}
