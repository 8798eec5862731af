package containers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/routes"
	"github.com/mmynk/billed/internal/views"
)

// ErrUnknownBill is returned when a receipt is requested for a bill that is
// not in the list.
var ErrUnknownBill = errors.New("unknown bill")

// Bills is the container of the bills list page.
type Bills struct {
	deps   Deps
	layout views.Layout
	bills  []models.Bill
	modal  *views.Receipt
}

// NewBills returns the bills container.
func NewBills(deps Deps) *Bills {
	return &Bills{
		deps:   deps,
		layout: views.LayoutFor(deps.user(), views.IconWindow),
	}
}

// Mount renders the loading view, fetches the bills and renders either the
// table or the error view. The error is returned after it is rendered.
func (b *Bills) Mount(ctx context.Context) error {
	b.deps.Document.Replace(views.Loading(b.layout))

	bills, err := b.GetBills(ctx)
	if err != nil {
		b.deps.Metrics.ListFailed()
		b.deps.Document.Replace(views.Error(b.layout, err.Error()))
		return fmt.Errorf("list bills: %w", err)
	}
	b.bills = bills
	b.render()
	return nil
}

// GetBills returns the bills of the remote store. Without a store there
// are no bills.
func (b *Bills) GetBills(ctx context.Context) ([]models.Bill, error) {
	if b.deps.Store == nil {
		return nil, nil
	}
	bills, err := b.deps.Store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("Bills fetched", "count", len(bills))
	return bills, nil
}

// HandleClickNewBill moves to the new-bill form.
func (b *Bills) HandleClickNewBill(ctx context.Context) {
	b.deps.Navigate(ctx, routes.NewBill)
}

// HandleClickIconEye opens the receipt modal of the bill with the given ID.
func (b *Bills) HandleClickIconEye(ctx context.Context, billID string) error {
	for _, bill := range b.bills {
		if bill.ID == billID {
			b.modal = &views.Receipt{FileURL: bill.FileURL, FileName: bill.FileName}
			b.render()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownBill, billID)
}

// Rendered returns the bills of the last successful fetch.
func (b *Bills) Rendered() []models.Bill {
	return b.bills
}

func (b *Bills) render() {
	b.deps.Document.Replace(views.Bills(views.BillsPage{
		Layout: b.layout,
		Bills:  b.bills,
		Modal:  b.modal,
	}))
}
