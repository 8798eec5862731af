package containers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/client/clienttest"
	"github.com/mmynk/billed/internal/containers"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/routes"
	"github.com/mmynk/billed/internal/views/viewtest"
)

func TestBillsMount(t *testing.T) {
	stub := clienttest.NewStub()
	deps, h := newDeps(t, stub)
	bills := containers.NewBills(deps)

	require.NoError(t, bills.Mount(context.Background()))
	assert.Equal(t, 1, stub.ListCalls())

	history := h.doc.History()
	require.Len(t, history, 2)
	loading := viewtest.ByID(viewtest.Parse(t, history[0]), "loading")
	require.NotNil(t, loading)
	assert.Equal(t, "Loading...", viewtest.Text(loading))

	doc := viewtest.Parse(t, h.doc.Body())
	rows := viewtest.Cells(viewtest.ByTestID(doc, "tbody"))
	require.Len(t, rows, 4)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1][2], rows[i][2], "dates must be non-increasing")
	}
	assert.True(t, viewtest.HasClass(viewtest.ByTestID(doc, "icon-window"), "active-icon"))
	assert.False(t, viewtest.HasClass(viewtest.ByTestID(doc, "icon-mail"), "active-icon"))
	assert.Len(t, bills.Rendered(), 4)
}

func TestBillsMountError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"404", errors.New("Erreur 404"), "Erreur 404"},
		{"500 from the API", &client.Error{Message: "Erreur 500"}, "Erreur 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := clienttest.NewStub()
			stub.ListFunc = func(context.Context) ([]models.Bill, error) { return nil, tt.err }
			deps, h := newDeps(t, stub)

			err := containers.NewBills(deps).Mount(context.Background())
			assert.ErrorIs(t, err, tt.err)

			doc := viewtest.Parse(t, h.doc.Body())
			msg := viewtest.ByTestID(doc, "error-message")
			require.NotNil(t, msg)
			assert.Equal(t, tt.want, viewtest.Text(msg))
			assert.Nil(t, viewtest.ByTestID(doc, "tbody"))
		})
	}
}

func TestBillsWithoutStore(t *testing.T) {
	deps, h := newDeps(t, nil)
	require.NoError(t, containers.NewBills(deps).Mount(context.Background()))

	rows := viewtest.Cells(viewtest.ByTestID(viewtest.Parse(t, h.doc.Body()), "tbody"))
	assert.Empty(t, rows)
}

func TestBillsListsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := clienttest.NewMockStore(ctrl)
	billsClient := clienttest.NewMockBillsClient(ctrl)
	store.EXPECT().Bills().Return(billsClient)
	billsClient.EXPECT().List(gomock.Any()).Return(clienttest.Fixtures()[:1], nil)

	deps, h := newDeps(t, store)
	require.NoError(t, containers.NewBills(deps).Mount(context.Background()))

	eyes := viewtest.AllByTestID(viewtest.Parse(t, h.doc.Body()), "icon-eye")
	assert.Len(t, eyes, 1)
}

func TestBillsHandleClickIconEye(t *testing.T) {
	deps, h := newDeps(t, clienttest.NewStub())
	bills := containers.NewBills(deps)
	ctx := context.Background()
	require.NoError(t, bills.Mount(ctx))

	fixture := clienttest.Fixtures()[2]
	require.NoError(t, bills.HandleClickIconEye(ctx, fixture.ID))

	modal := viewtest.ByID(viewtest.Parse(t, h.doc.Body()), "modaleFile")
	require.NotNil(t, modal)
	assert.True(t, viewtest.HasClass(modal, "show"))

	err := bills.HandleClickIconEye(ctx, "missing")
	assert.ErrorIs(t, err, containers.ErrUnknownBill)
}

func TestBillsHandleClickNewBill(t *testing.T) {
	deps, h := newDeps(t, clienttest.NewStub())
	bills := containers.NewBills(deps)

	bills.HandleClickNewBill(context.Background())
	assert.Equal(t, []routes.Path{routes.NewBill}, h.navigated)
}
