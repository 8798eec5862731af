// Package client is the remote store seen by the web UI. Store.Bills()
// returns a BillsClient; New builds the implementation that talks to the
// bills API over HTTP.
package client

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/billed/internal/api"
	"github.com/mmynk/billed/internal/models"
)

//go:generate mockgen -destination=clienttest/mock_client.go -package=clienttest . Store,BillsClient

// Receipt is a receipt file staged for upload.
type Receipt struct {
	FileName string
	Content  []byte
}

// CreateResult is what the remote store returns for an uploaded receipt.
type CreateResult struct {
	FileURL string
	Key     string
}

// BillsClient lists and creates bills.
type BillsClient interface {
	List(ctx context.Context) ([]models.Bill, error)
	Create(ctx context.Context, receipt Receipt) (*CreateResult, error)
	Update(ctx context.Context, id string, bill models.Bill) (*models.Bill, error)
}

// Store is the entry point to the remote store.
type Store interface {
	Bills() BillsClient
}

// Error is a failure reported by the remote store. Its text is the
// server's message, which views show verbatim.
type Error struct {
	Code    connect.Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func remoteError(err error) error {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return err
	}
	msg := connectErr.Message()
	if msg == "" {
		msg = connectErr.Code().String()
	}
	return &Error{Code: connectErr.Code(), Message: msg}
}

// HTTPStore is the Store backed by the bills API.
type HTTPStore struct {
	bills *httpBills
}

// New returns a Store calling the API at baseURL with the given bearer
// token. An empty token sends unauthenticated requests.
func New(httpClient connect.HTTPClient, baseURL, token string) *HTTPStore {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPStore{bills: &httpBills{
		api:   api.NewBillServiceClient(httpClient, baseURL),
		token: token,
	}}
}

func (s *HTTPStore) Bills() BillsClient { return s.bills }

type httpBills struct {
	api   *api.BillServiceClient
	token string
}

func authorize[T any](req *connect.Request[T], token string) *connect.Request[T] {
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

func (b *httpBills) List(ctx context.Context) ([]models.Bill, error) {
	resp, err := b.api.ListBills(ctx, authorize(connect.NewRequest(&api.ListBillsRequest{}), b.token))
	if err != nil {
		return nil, remoteError(err)
	}
	return resp.Msg.Bills, nil
}

func (b *httpBills) Create(ctx context.Context, receipt Receipt) (*CreateResult, error) {
	resp, err := b.api.CreateBill(ctx, authorize(connect.NewRequest(&api.CreateBillRequest{
		FileName: receipt.FileName,
		Content:  receipt.Content,
	}), b.token))
	if err != nil {
		return nil, remoteError(err)
	}
	return &CreateResult{FileURL: resp.Msg.FileURL, Key: resp.Msg.Key}, nil
}

func (b *httpBills) Update(ctx context.Context, id string, bill models.Bill) (*models.Bill, error) {
	bill.ID = id
	resp, err := b.api.UpdateBill(ctx, authorize(connect.NewRequest(&api.UpdateBillRequest{Bill: bill}), b.token))
	if err != nil {
		return nil, remoteError(err)
	}
	return &resp.Msg.Bill, nil
}
