// Package web serves the Billed pages. Every request gets its own
// document, session, remote store client and containers; pages that
// complete a form redirect to the path the container navigated to.
package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/containers"
	"github.com/mmynk/billed/internal/metrics"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/receipts"
	"github.com/mmynk/billed/internal/routes"
	"github.com/mmynk/billed/internal/session"
	"github.com/mmynk/billed/internal/views"
)

const (
	pageTitle = "Billed"

	// maxUploadSize bounds the new-bill multipart body.
	maxUploadSize = 10 << 20

	loginFailed = "Identifiants invalides"
)

// Authenticator checks login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// TokenIssuer issues API tokens for signed-in users.
type TokenIssuer interface {
	Generate(user *models.User) (string, error)
}

// ReceiptOpener opens stored receipt files.
type ReceiptOpener interface {
	Open(storedName string) (*os.File, string, error)
}

// StoreFactory returns the remote store used on behalf of the holder of
// token.
type StoreFactory func(token string) client.Store

// Options configures a Server.
type Options struct {
	Cookies       *session.CookieCodec
	Authenticator Authenticator
	Tokens        TokenIssuer
	Receipts      ReceiptOpener
	Stores        StoreFactory

	// Metrics may be nil.
	Metrics *metrics.Metrics
}

// Server serves the login, bills and new-bill pages and the receipt files.
type Server struct {
	opts Options
}

// NewServer creates a Server.
func NewServer(opts Options) *Server {
	return &Server{opts: opts}
}

// Register adds the page routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	s.handle(mux, "GET /{$}", "login", s.handleLoginPage)
	s.handle(mux, "POST /{$}", "login", s.handleLogin)
	s.handle(mux, "POST /logout", "logout", s.handleLogout)
	s.handle(mux, "GET "+string(routes.Bills), "bills", s.handleBills)
	s.handle(mux, "GET "+string(routes.NewBill), "new_bill", s.handleNewBillPage)
	s.handle(mux, "POST "+string(routes.NewBill), "new_bill", s.handleNewBill)
	s.handle(mux, "GET /receipts/{file}", "receipts", s.handleReceipt)
}

func (s *Server) handle(mux *http.ServeMux, pattern, route string, h http.HandlerFunc) {
	mux.Handle(pattern, s.opts.Metrics.Instrument(route, h))
}

// page is the per-request state of a rendered page.
type page struct {
	doc     *views.Document
	storage *session.CookieStorage
	session *session.Session
	router  *routes.Router
	bills   *containers.Bills
	newBill *containers.NewBill

	// target is the path a container navigated to.
	target routes.Path
}

func (s *Server) newPage(r *http.Request) *page {
	storage := s.opts.Cookies.Load(r)
	p := &page{
		doc:     views.NewDocument(),
		storage: storage,
		session: session.New(storage),
	}

	var store client.Store
	if s.opts.Stores != nil {
		store = s.opts.Stores(p.session.Token())
	}
	deps := containers.Deps{
		Document: p.doc,
		Navigate: p.navigate,
		Store:    store,
		Session:  p.session,
		Metrics:  s.opts.Metrics,
	}
	p.bills = containers.NewBills(deps)
	p.newBill = containers.NewNewBill(deps)

	p.router = routes.NewRouter(map[routes.Path]routes.Page{
		routes.Login: func(context.Context) {
			p.doc.Replace(views.Login(views.LoginPage{}))
		},
		routes.Bills: func(ctx context.Context) {
			if err := p.bills.Mount(ctx); err != nil {
				slog.Warn("Failed to load bills", "error", err)
			}
		},
		routes.NewBill: p.newBill.Mount,
	})
	return p
}

func (p *page) navigate(_ context.Context, path routes.Path) {
	p.target = path
}

// signedIn loads the page of a signed-in user. Anonymous requests are
// redirected to the login page.
func (s *Server) signedIn(w http.ResponseWriter, r *http.Request) (*page, bool) {
	p := s.newPage(r)
	if _, ok := p.session.User(); !ok {
		p.redirect(w, r, routes.Login)
		return nil, false
	}
	return p, true
}

func (p *page) saveSession(w http.ResponseWriter) {
	if err := p.storage.Save(w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
}

func (p *page) render(w http.ResponseWriter, status int) {
	p.saveSession(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := views.Write(w, pageTitle, p.doc.Body()); err != nil {
		slog.Error("Failed to write page", "error", err)
	}
}

func (p *page) redirect(w http.ResponseWriter, r *http.Request, path routes.Path) {
	p.saveSession(w)
	http.Redirect(w, r, string(path), http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(r)
	if _, ok := p.session.User(); ok {
		p.redirect(w, r, routes.Bills)
		return
	}
	s.navigate(w, r, p, routes.Login)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(r)
	email := r.FormValue("email")

	user, err := s.opts.Authenticator.Authenticate(r.Context(), email, r.FormValue("password"))
	if err != nil {
		slog.Info("Login failed", "email", email, "error", err)
		p.doc.Replace(views.Login(views.LoginPage{Email: email, Error: loginFailed}))
		p.render(w, http.StatusUnauthorized)
		return
	}

	token, err := s.opts.Tokens.Generate(user)
	if err != nil {
		slog.Error("Failed to issue token", "email", email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := p.session.SetUser(models.SessionUser{Type: user.Type, Email: user.Email}); err != nil {
		slog.Error("Failed to store session user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	p.session.SetToken(token)

	slog.Info("User signed in", "email", user.Email, "type", user.Type)
	p.redirect(w, r, routes.Bills)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(r)
	p.session.Clear()
	p.redirect(w, r, routes.Login)
}

func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	p, ok := s.signedIn(w, r)
	if !ok {
		return
	}
	if err := p.router.Navigate(r.Context(), routes.Bills); err != nil {
		slog.Error("Navigation failed", "path", routes.Bills, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if id := r.URL.Query().Get("receipt"); id != "" {
		if err := p.bills.HandleClickIconEye(r.Context(), id); err != nil {
			slog.Debug("Receipt not shown", "bill_id", id, "error", err)
		}
	}
	p.render(w, http.StatusOK)
}

func (s *Server) handleNewBillPage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.signedIn(w, r)
	if !ok {
		return
	}
	s.navigate(w, r, p, routes.NewBill)
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request, p *page, path routes.Path) {
	if err := p.router.Navigate(r.Context(), path); err != nil {
		slog.Error("Navigation failed", "path", path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	p.render(w, http.StatusOK)
}

func (s *Server) handleNewBill(w http.ResponseWriter, r *http.Request) {
	p, ok := s.signedIn(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Warn("Failed to parse new bill form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if name, content, ok := formFile(r, "file"); ok {
		if err := p.newBill.HandleChangeFile(ctx, name, content); err != nil {
			slog.Debug("Receipt not staged", "file", name, "error", err)
		}
	}

	err := p.newBill.HandleSubmit(ctx, views.BillForm{
		Type:       models.ExpenseType(r.FormValue("type")),
		Name:       r.FormValue("name"),
		Date:       r.FormValue("date"),
		Amount:     r.FormValue("amount"),
		VAT:        r.FormValue("vat"),
		Pct:        r.FormValue("pct"),
		Commentary: r.FormValue("commentary"),
	})
	if err != nil {
		p.render(w, http.StatusBadGateway)
		return
	}
	if p.target != "" {
		p.redirect(w, r, p.target)
		return
	}
	p.render(w, http.StatusOK)
}

func formFile(r *http.Request, field string) (string, []byte, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		slog.Warn("Failed to read uploaded file", "field", field, "error", err)
		return "", nil, false
	}
	return header.Filename, content, true
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	f, mime, err := s.opts.Receipts.Open(r.PathValue("file"))
	if errors.Is(err, receipts.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("Failed to open receipt", "file", r.PathValue("file"), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	if !receipts.IsImage(mime) {
		slog.Warn("Refusing to serve non-image receipt", "file", r.PathValue("file"), "mime", mime)
		http.Error(w, "unsupported receipt type", http.StatusUnsupportedMediaType)
		return
	}

	info, err := f.Stat()
	if err != nil {
		slog.Error("Failed to stat receipt", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
