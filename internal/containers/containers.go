// Package containers binds the Billed pages to the remote store. A
// container renders into a views.Document and moves between pages through
// a routes.Navigator; one container instance serves one request.
package containers

import (
	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/metrics"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/routes"
	"github.com/mmynk/billed/internal/session"
	"github.com/mmynk/billed/internal/views"
)

// Deps are the collaborators shared by every container.
type Deps struct {
	Document *views.Document
	Navigate routes.Navigator
	Store    client.Store
	Session  *session.Session

	// Metrics may be nil.
	Metrics *metrics.Metrics
}

func (d Deps) user() models.SessionUser {
	if d.Session == nil {
		return models.SessionUser{}
	}
	user, _ := d.Session.User()
	return user
}
