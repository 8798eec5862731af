package containers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/client/clienttest"
	"github.com/mmynk/billed/internal/containers"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/routes"
	"github.com/mmynk/billed/internal/views"
	"github.com/mmynk/billed/internal/views/viewtest"
)

var receiptContent = []byte("\x89PNG\r\n\x1a\n")

func validForm() views.BillForm {
	return views.BillForm{
		Type:       models.ExpenseTransports,
		Name:       "Vol Paris Londres",
		Date:       "2022-04-04",
		Amount:     "348",
		VAT:        "70",
		Pct:        "20",
		Commentary: "séminaire",
	}
}

func TestNewBillMount(t *testing.T) {
	deps, h := newDeps(t, clienttest.NewStub())
	containers.NewNewBill(deps).Mount(context.Background())

	doc := viewtest.Parse(t, h.doc.Body())
	assert.NotNil(t, viewtest.ByTestID(doc, "form-new-bill"))
	assert.True(t, viewtest.HasClass(viewtest.ByTestID(doc, "icon-mail"), "active-icon"))
	assert.False(t, viewtest.HasClass(viewtest.ByTestID(doc, "icon-window"), "active-icon"))
}

func TestHandleChangeFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		allowed bool
	}{
		{"png", "receipt.png", true},
		{"upper case jpg", "RECEIPT.JPG", true},
		{"jpeg", "photo.jpeg", true},
		{"txt", "receipt.txt", false},
		{"pdf", "facture.pdf", false},
		{"no extension", "receipt", false},
		{"extension in the middle", "receipt.png.exe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _ := newDeps(t, clienttest.NewStub())
			nb := containers.NewNewBill(deps)

			err := nb.HandleChangeFile(context.Background(), tt.file, receiptContent)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.file, nb.FileName())
			} else {
				assert.ErrorIs(t, err, containers.ErrReceiptExtension)
				assert.Empty(t, nb.FileName())
			}
			assert.Empty(t, nb.FileURL())
			assert.Equal(t, containers.StateEditing, nb.State())
		})
	}
}

func TestHandleChangeFileClearsPreviousReceipt(t *testing.T) {
	deps, _ := newDeps(t, clienttest.NewStub())
	nb := containers.NewNewBill(deps)
	ctx := context.Background()

	require.NoError(t, nb.HandleChangeFile(ctx, "receipt.png", receiptContent))
	require.Error(t, nb.HandleChangeFile(ctx, "receipt.txt", receiptContent))
	assert.Empty(t, nb.FileName())
}

func TestHandleSubmit(t *testing.T) {
	stub := clienttest.NewStub()
	deps, h := newDeps(t, stub)
	nb := containers.NewNewBill(deps)
	ctx := context.Background()

	require.NoError(t, nb.HandleChangeFile(ctx, "receipt.png", receiptContent))
	require.NoError(t, nb.HandleSubmit(ctx, validForm()))

	assert.Equal(t, clienttest.CreatedKey, nb.BillID())
	assert.Equal(t, clienttest.CreatedFileURL, nb.FileURL())
	assert.Equal(t, containers.StateDone, nb.State())
	assert.Equal(t, []routes.Path{routes.Bills}, h.navigated)

	created := stub.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "receipt.png", created[0].FileName)
	assert.Equal(t, receiptContent, created[0].Content)

	updated := stub.Updated()
	require.Len(t, updated, 1)
	assert.Equal(t, models.Bill{
		ID:         clienttest.CreatedKey,
		Email:      "a@a",
		Type:       models.ExpenseTransports,
		Name:       "Vol Paris Londres",
		Amount:     348,
		Date:       "2022-04-04",
		VAT:        "70",
		Pct:        20,
		Commentary: "séminaire",
		FileURL:    clienttest.CreatedFileURL,
		FileName:   "receipt.png",
		Status:     models.StatusPending,
	}, updated[0])

	err := nb.HandleSubmit(ctx, validForm())
	assert.Error(t, err, "a submitted form cannot be submitted again")
	assert.Len(t, stub.Created(), 1)
}

func TestHandleSubmitDefaultsPct(t *testing.T) {
	stub := clienttest.NewStub()
	deps, _ := newDeps(t, stub)
	nb := containers.NewNewBill(deps)
	ctx := context.Background()

	form := validForm()
	form.Pct = "0"
	require.NoError(t, nb.HandleChangeFile(ctx, "receipt.jpg", receiptContent))
	require.NoError(t, nb.HandleSubmit(ctx, form))

	require.Len(t, stub.Updated(), 1)
	assert.Equal(t, models.DefaultPct, stub.Updated()[0].Pct)
}

func TestHandleSubmitRejectedLocally(t *testing.T) {
	tests := []struct {
		name string
		file string
		form func(f *views.BillForm)
	}{
		{name: "no file", form: func(*views.BillForm) {}},
		{name: "txt file", file: "receipt.txt", form: func(*views.BillForm) {}},
		{name: "missing date", file: "receipt.png", form: func(f *views.BillForm) { f.Date = "" }},
		{name: "bad date", file: "receipt.png", form: func(f *views.BillForm) { f.Date = "04/04/2022" }},
		{name: "missing amount", file: "receipt.png", form: func(f *views.BillForm) { f.Amount = "" }},
		{name: "amount not a number", file: "receipt.png", form: func(f *views.BillForm) { f.Amount = "abc" }},
		{name: "vat not a number", file: "receipt.png", form: func(f *views.BillForm) { f.VAT = "abc" }},
		{name: "missing pct", file: "receipt.png", form: func(f *views.BillForm) { f.Pct = "" }},
		{name: "pct above 100", file: "receipt.png", form: func(f *views.BillForm) { f.Pct = "101" }},
		{name: "pct overflows int", file: "receipt.png", form: func(f *views.BillForm) { f.Pct = "99999999999999999999" }},
		{name: "negative amount", file: "receipt.png", form: func(f *views.BillForm) { f.Amount = "-348" }},
		{name: "zero amount", file: "receipt.png", form: func(f *views.BillForm) { f.Amount = "0" }},
		{name: "unknown type", file: "receipt.png", form: func(f *views.BillForm) { f.Type = "Cadeaux" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := clienttest.NewStub()
			deps, h := newDeps(t, stub)
			nb := containers.NewNewBill(deps)
			ctx := context.Background()

			if tt.file != "" {
				_ = nb.HandleChangeFile(ctx, tt.file, receiptContent)
			}
			form := validForm()
			tt.form(&form)

			require.NoError(t, nb.HandleSubmit(ctx, form))
			assert.Empty(t, stub.Created())
			assert.Empty(t, stub.Updated())
			assert.Empty(t, h.navigated)
			assert.Empty(t, nb.BillID())
			assert.Equal(t, containers.StateRejected, nb.State())
			assert.NotNil(t, viewtest.ByTestID(viewtest.Parse(t, h.doc.Body()), "form-new-bill"))
		})
	}
}

func TestHandleSubmitAfterRejection(t *testing.T) {
	stub := clienttest.NewStub()
	deps, h := newDeps(t, stub)
	nb := containers.NewNewBill(deps)
	ctx := context.Background()

	require.NoError(t, nb.HandleSubmit(ctx, validForm()))
	require.Equal(t, containers.StateRejected, nb.State())

	require.NoError(t, nb.HandleChangeFile(ctx, "receipt.jpeg", receiptContent))
	require.NoError(t, nb.HandleSubmit(ctx, validForm()))
	assert.Equal(t, containers.StateDone, nb.State())
	assert.Equal(t, []routes.Path{routes.Bills}, h.navigated)
}

func TestHandleSubmitCreateFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := clienttest.NewMockStore(ctrl)
	billsClient := clienttest.NewMockBillsClient(ctrl)
	store.EXPECT().Bills().Return(billsClient).AnyTimes()

	gomock.InOrder(
		billsClient.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, &client.Error{Message: "Erreur 500"}),
		billsClient.EXPECT().Create(gomock.Any(), client.Receipt{FileName: "receipt.png", Content: receiptContent}).
			Return(&client.CreateResult{FileURL: clienttest.CreatedFileURL, Key: clienttest.CreatedKey}, nil),
		billsClient.EXPECT().Update(gomock.Any(), clienttest.CreatedKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, bill models.Bill) (*models.Bill, error) {
				return &bill, nil
			}),
	)

	deps, h := newDeps(t, store)
	nb := containers.NewNewBill(deps)
	ctx := context.Background()
	require.NoError(t, nb.HandleChangeFile(ctx, "receipt.png", receiptContent))

	err := nb.HandleSubmit(ctx, validForm())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Erreur 500")
	assert.Empty(t, nb.BillID())
	assert.Empty(t, h.navigated)
	assert.Equal(t, containers.StateEditing, nb.State())
	assert.NotNil(t, viewtest.ByTestID(viewtest.Parse(t, h.doc.Body()), "form-new-bill"))

	require.NoError(t, nb.HandleSubmit(ctx, validForm()))
	assert.Equal(t, clienttest.CreatedKey, nb.BillID())
	assert.Equal(t, []routes.Path{routes.Bills}, h.navigated)
}

func TestHandleSubmitUpdateFails(t *testing.T) {
	stub := clienttest.NewStub()
	stub.UpdateFunc = func(context.Context, string, models.Bill) (*models.Bill, error) {
		return nil, &client.Error{Message: "Erreur 403"}
	}
	deps, h := newDeps(t, stub)
	nb := containers.NewNewBill(deps)
	ctx := context.Background()

	require.NoError(t, nb.HandleChangeFile(ctx, "receipt.png", receiptContent))
	err := nb.HandleSubmit(ctx, validForm())

	require.Error(t, err)
	assert.Equal(t, clienttest.CreatedKey, nb.BillID())
	assert.Empty(t, h.navigated)
	assert.Equal(t, containers.StateEditing, nb.State())
}
