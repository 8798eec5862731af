package models

import (
	"path/filepath"
	"strings"
)

// Status is the approval state of a bill.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRefused  Status = "refused"
)

// Label returns the text shown to employees for the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusAccepted:
		return "Accepté"
	case StatusRefused:
		return "Refusé"
	default:
		return string(s)
	}
}

// ExpenseType is the category of an expense.
type ExpenseType string

const (
	ExpenseTransports  ExpenseType = "Transports"
	ExpenseRestaurants ExpenseType = "Restaurants et bars"
	ExpenseHotel       ExpenseType = "Hôtel et logement"
	ExpenseOnline      ExpenseType = "Services en ligne"
	ExpenseIT          ExpenseType = "IT et électronique"
	ExpenseEquipment   ExpenseType = "Equipement et matériel"
	ExpenseSupplies    ExpenseType = "Fournitures de bureau"
)

// ExpenseTypes lists the categories in the order the form offers them.
var ExpenseTypes = []ExpenseType{
	ExpenseTransports,
	ExpenseRestaurants,
	ExpenseHotel,
	ExpenseOnline,
	ExpenseIT,
	ExpenseEquipment,
	ExpenseSupplies,
}

// DefaultPct is the VAT percentage applied when the employee leaves it empty.
const DefaultPct = 20

// DateLayout is the format of Bill.Date.
const DateLayout = "2006-01-02"

// Bill is an expense record submitted by an employee.
type Bill struct {
	// ID is assigned by the remote store when the receipt is uploaded.
	ID string `json:"id"`

	// Email identifies the employee who owns the bill.
	Email string `json:"email"`

	Type ExpenseType `json:"type"`
	Name string      `json:"name"`

	// Amount is the total including VAT, in euros.
	Amount float64 `json:"amount"`

	// Date is the expense date formatted with DateLayout.
	Date string `json:"date"`

	// VAT is the VAT amount as typed by the employee. It may be empty.
	VAT string `json:"vat"`

	// Pct is the VAT percentage.
	Pct int `json:"pct"`

	Commentary   string `json:"commentary,omitempty"`
	CommentAdmin string `json:"commentAdmin,omitempty"`

	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`

	Status Status `json:"status"`
}

// allowedReceiptExtensions are the receipt formats the new-bill form accepts.
var allowedReceiptExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// IsAllowedReceipt reports whether name has a jpg, jpeg or png extension,
// ignoring case.
func IsAllowedReceipt(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return allowedReceiptExtensions[strings.ToLower(ext)]
}
