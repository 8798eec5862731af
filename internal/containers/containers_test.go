package containers_test

import (
	"context"
	"testing"

	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/containers"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/routes"
	"github.com/mmynk/billed/internal/session"
	"github.com/mmynk/billed/internal/views"
)

var employee = models.SessionUser{Type: models.UserEmployee, Email: "a@a"}

// harness records the pages a container navigates to.
type harness struct {
	doc       *views.Document
	navigated []routes.Path
}

func newDeps(t *testing.T, store client.Store) (containers.Deps, *harness) {
	t.Helper()
	h := &harness{doc: views.NewDocument()}

	sess := session.New(session.NewMemoryStorage())
	if err := sess.SetUser(employee); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	return containers.Deps{
		Document: h.doc,
		Navigate: func(_ context.Context, p routes.Path) { h.navigated = append(h.navigated, p) },
		Store:    store,
		Session:  sess,
	}, h
}
