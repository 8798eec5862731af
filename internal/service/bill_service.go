package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billed/internal/api"
	"github.com/mmynk/billed/internal/metrics"
	"github.com/mmynk/billed/internal/middleware"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/receipts"
	"github.com/mmynk/billed/internal/storage"
)

var _ api.BillServiceHandler = (*BillService)(nil)

// ReceiptStore saves uploaded receipt files.
type ReceiptStore interface {
	Save(ctx context.Context, fileName string, content []byte) (*receipts.Receipt, error)
}

// BillService implements the bills API.
type BillService struct {
	store     storage.Store
	receipts  ReceiptStore
	publicURL string
	metrics   *metrics.Metrics
}

// NewBillService creates a BillService. publicURL is the externally
// reachable base URL that receipt links are built from.
func NewBillService(store storage.Store, receipts ReceiptStore, publicURL string, m *metrics.Metrics) *BillService {
	return &BillService{
		store:     store,
		receipts:  receipts,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		metrics:   m,
	}
}

// ReceiptURL returns the public URL of a stored receipt.
func (s *BillService) ReceiptURL(storedName string) string {
	return s.publicURL + "/receipts/" + storedName
}

// ListBills returns the caller's bills. Admins get every bill.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("caller has no email"))
	}

	filter := email
	if middleware.GetUserType(ctx) == models.UserAdmin {
		filter = ""
	}

	bills, err := s.store.ListBills(ctx, filter)
	if err != nil {
		slog.Error("ListBills failed", "email", email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if bills == nil {
		bills = []models.Bill{}
	}

	slog.Info("ListBills successful", "email", email, "count", len(bills))
	return connect.NewResponse(&api.ListBillsResponse{Bills: bills}), nil
}

// CreateBill stores the receipt and opens a pending bill whose ID is the
// receipt key.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	email := middleware.GetEmail(ctx)
	slog.Info("CreateBill request received",
		"email", email,
		"file_name", req.Msg.FileName,
		"size", len(req.Msg.Content),
	)

	if email == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("caller has no email"))
	}
	if !models.IsAllowedReceipt(req.Msg.FileName) {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("receipt %q must be a jpg, jpeg or png file", req.Msg.FileName))
	}
	if len(req.Msg.Content) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("receipt is empty"))
	}
	if !receipts.IsImageContent(req.Msg.Content) {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("receipt %q is not a jpeg or png image", req.Msg.FileName))
	}

	receipt, err := s.receipts.Save(ctx, req.Msg.FileName, req.Msg.Content)
	if err != nil {
		slog.Error("CreateBill failed to save receipt", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	bill := &models.Bill{
		ID:       receipt.Key,
		Email:    email,
		Pct:      models.DefaultPct,
		FileURL:  s.ReceiptURL(receipt.StoredName),
		FileName: receipt.FileName,
		Status:   models.StatusPending,
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.BillCreated()
	slog.Info("Bill created", "bill_id", bill.ID, "mime", receipt.MIME)

	return connect.NewResponse(&api.CreateBillResponse{
		FileURL: bill.FileURL,
		Key:     bill.ID,
	}), nil
}

// UpdateBill fills in a bill created by CreateBill. Owner, receipt and
// status are kept from the stored bill unless the caller is an admin.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	in := req.Msg.Bill
	email := middleware.GetEmail(ctx)
	isAdmin := middleware.GetUserType(ctx) == models.UserAdmin
	slog.Info("UpdateBill request received", "bill_id", in.ID, "email", email)

	if in.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bill id required"))
	}

	existing, err := s.store.GetBill(ctx, in.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		slog.Error("UpdateBill failed to load bill", "bill_id", in.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if existing.Email != email && !isAdmin {
		return nil, connect.NewError(connect.CodePermissionDenied,
			fmt.Errorf("bill %s belongs to another user", in.ID))
	}

	in.Email = existing.Email
	if in.FileURL == "" {
		in.FileURL = existing.FileURL
	}
	if in.FileName == "" {
		in.FileName = existing.FileName
	}
	if !isAdmin || in.Status == "" {
		in.Status = existing.Status
	}
	if !isAdmin {
		in.CommentAdmin = existing.CommentAdmin
	}

	if err := s.store.UpdateBill(ctx, &in); err != nil {
		slog.Error("UpdateBill failed", "bill_id", in.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Bill updated", "bill_id", in.ID)
	return connect.NewResponse(&api.UpdateBillResponse{Bill: in}), nil
}
