package clienttest

import (
	"context"
	"sync"

	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/models"
)

var _ client.Store = (*Stub)(nil)

// Stub is an in-memory client.Store. By default List returns Fixtures,
// Create returns CreatedFileURL/CreatedKey and Update echoes the bill.
// Replace the Func fields to inject failures.
type Stub struct {
	ListFunc   func(ctx context.Context) ([]models.Bill, error)
	CreateFunc func(ctx context.Context, receipt client.Receipt) (*client.CreateResult, error)
	UpdateFunc func(ctx context.Context, id string, bill models.Bill) (*models.Bill, error)

	mu      sync.Mutex
	lists   int
	created []client.Receipt
	updated []models.Bill
}

// NewStub returns a Stub with the default behaviour.
func NewStub() *Stub {
	return &Stub{
		ListFunc: func(context.Context) ([]models.Bill, error) {
			return Fixtures(), nil
		},
		CreateFunc: func(context.Context, client.Receipt) (*client.CreateResult, error) {
			return &client.CreateResult{FileURL: CreatedFileURL, Key: CreatedKey}, nil
		},
		UpdateFunc: func(_ context.Context, id string, bill models.Bill) (*models.Bill, error) {
			bill.ID = id
			return &bill, nil
		},
	}
}

func (s *Stub) Bills() client.BillsClient { return s }

func (s *Stub) List(ctx context.Context) ([]models.Bill, error) {
	s.mu.Lock()
	s.lists++
	s.mu.Unlock()
	return s.ListFunc(ctx)
}

func (s *Stub) Create(ctx context.Context, receipt client.Receipt) (*client.CreateResult, error) {
	s.mu.Lock()
	s.created = append(s.created, receipt)
	s.mu.Unlock()
	return s.CreateFunc(ctx, receipt)
}

func (s *Stub) Update(ctx context.Context, id string, bill models.Bill) (*models.Bill, error) {
	s.mu.Lock()
	bill.ID = id
	s.updated = append(s.updated, bill)
	s.mu.Unlock()
	return s.UpdateFunc(ctx, id, bill)
}

// ListCalls returns how many times List ran.
func (s *Stub) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}

// Created returns the receipts passed to Create.
func (s *Stub) Created() []client.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.Receipt(nil), s.created...)
}

// Updated returns the bills passed to Update.
func (s *Stub) Updated() []models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Bill(nil), s.updated...)
}
