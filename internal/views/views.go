// Package views renders the Billed pages from embedded HTML templates.
// Render functions return document bodies; Write wraps a body in the page
// shell.
package views

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"log/slog"

	"github.com/mmynk/billed/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("billed").ParseFS(templateFS, "templates/*.html"))

// Icon names an entry of the vertical navigation bar.
type Icon string

const (
	IconNone   Icon = ""
	IconWindow Icon = "window"
	IconMail   Icon = "mail"
)

// Layout is the data of the vertical navigation bar.
type Layout struct {
	// Active is the highlighted icon.
	Active Icon
	Email  string
}

// LayoutFor returns the navigation bar of user on the page whose icon is
// active. Only employees get a highlighted icon.
func LayoutFor(user models.SessionUser, active Icon) Layout {
	if !user.IsEmployee() {
		active = IconNone
	}
	return Layout{Active: active, Email: user.Email}
}

// ReceiptWidth is the width in pixels of the receipt image in the modal.
const ReceiptWidth = 500

// Receipt is the receipt shown in the bills page modal.
type Receipt struct {
	FileURL  string
	FileName string
	Width    int
}

// BillsPage is the data of the loaded bills page.
type BillsPage struct {
	Layout Layout
	Bills  []models.Bill

	// Modal is the open receipt, nil when the modal is closed.
	Modal *Receipt
}

type errorPage struct {
	Layout Layout
	Error  string
}

// BillForm holds the new-bill form fields as typed by the employee.
type BillForm struct {
	Type       models.ExpenseType
	Name       string
	Date       string
	Amount     string
	VAT        string
	Pct        string
	Commentary string
}

// NewBillPage is the data of the new-bill form.
type NewBillPage struct {
	Layout Layout
	Types  []models.ExpenseType
	Form   BillForm
}

// LoginPage is the data of the login page.
type LoginPage struct {
	Email string
	Error string
}

func render(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("Failed to render view", "template", name, "error", err)
		return ""
	}
	return template.HTML(buf.String())
}

// Loading renders the bills page while the list is being fetched.
func Loading(layout Layout) template.HTML {
	return render("loading", layout)
}

// Error renders msg verbatim in the error view.
func Error(layout Layout, msg string) template.HTML {
	return render("error", errorPage{Layout: layout, Error: msg})
}

// Bills renders the bills table, most recent first.
func Bills(page BillsPage) template.HTML {
	page.Bills = AntiChrono(page.Bills)
	if page.Modal != nil && page.Modal.Width == 0 {
		page.Modal.Width = ReceiptWidth
	}
	return render("bills", page)
}

// NewBill renders the new-bill form.
func NewBill(page NewBillPage) template.HTML {
	if page.Types == nil {
		page.Types = models.ExpenseTypes
	}
	return render("newbill", page)
}

// Login renders the login page.
func Login(page LoginPage) template.HTML {
	return render("login", page)
}

// Write writes body wrapped in a complete HTML page.
func Write(w io.Writer, title string, body template.HTML) error {
	return templates.ExecuteTemplate(w, "shell", struct {
		Title string
		Body  template.HTML
	}{title, body})
}
