// Package api defines the bills API: its messages, procedures and the
// Connect handler and client constructors. Messages are plain structs
// carried by a JSON codec.
package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"

	"github.com/mmynk/billed/internal/models"
)

// BillServiceName is the fully-qualified name of the bills service.
const BillServiceName = "billed.v1.BillService"

// Procedure paths.
const (
	ListBillsProcedure  = "/" + BillServiceName + "/ListBills"
	CreateBillProcedure = "/" + BillServiceName + "/CreateBill"
	UpdateBillProcedure = "/" + BillServiceName + "/UpdateBill"
)

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []models.Bill `json:"bills"`
}

// CreateBillRequest uploads a receipt and opens a pending bill for it.
type CreateBillRequest struct {
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
}

type CreateBillResponse struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

type UpdateBillRequest struct {
	Bill models.Bill `json:"bill"`
}

type UpdateBillResponse struct {
	Bill models.Bill `json:"bill"`
}

// BillServiceHandler is implemented by the server side of the bills API.
type BillServiceHandler interface {
	ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error)
	CreateBill(context.Context, *connect.Request[CreateBillRequest]) (*connect.Response[CreateBillResponse], error)
	UpdateBill(context.Context, *connect.Request[UpdateBillRequest]) (*connect.Response[UpdateBillResponse], error)
}

// jsonCodec marshals plain Go structs. It replaces Connect's default
// "json" codec, which only accepts protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Codec returns the codec shared by handlers and clients.
func Codec() connect.Codec { return jsonCodec{} }

// NewBillServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)

	list := connect.NewUnaryHandler(ListBillsProcedure, svc.ListBills, opts...)
	create := connect.NewUnaryHandler(CreateBillProcedure, svc.CreateBill, opts...)
	update := connect.NewUnaryHandler(UpdateBillProcedure, svc.UpdateBill, opts...)

	return "/" + BillServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ListBillsProcedure:
			list.ServeHTTP(w, r)
		case CreateBillProcedure:
			create.ServeHTTP(w, r)
		case UpdateBillProcedure:
			update.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BillServiceClient calls the bills API.
type BillServiceClient struct {
	list   *connect.Client[ListBillsRequest, ListBillsResponse]
	create *connect.Client[CreateBillRequest, CreateBillResponse]
	update *connect.Client[UpdateBillRequest, UpdateBillResponse]
}

// NewBillServiceClient constructs a client for the service at baseURL.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return &BillServiceClient{
		list:   connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+ListBillsProcedure, opts...),
		create: connect.NewClient[CreateBillRequest, CreateBillResponse](httpClient, baseURL+CreateBillProcedure, opts...),
		update: connect.NewClient[UpdateBillRequest, UpdateBillResponse](httpClient, baseURL+UpdateBillProcedure, opts...),
	}
}

func (c *BillServiceClient) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *BillServiceClient) CreateBill(ctx context.Context, req *connect.Request[CreateBillRequest]) (*connect.Response[CreateBillResponse], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *BillServiceClient) UpdateBill(ctx context.Context, req *connect.Request[UpdateBillRequest]) (*connect.Response[UpdateBillResponse], error) {
	return c.update.CallUnary(ctx, req)
}
