package views

import (
	"slices"
	"strings"

	"github.com/mmynk/billed/internal/models"
)

// AntiChrono returns a copy of bills ordered from the most recent date to
// the least recent. Bills with equal dates keep their input order.
func AntiChrono(bills []models.Bill) []models.Bill {
	sorted := slices.Clone(bills)
	slices.SortStableFunc(sorted, func(a, b models.Bill) int {
		return strings.Compare(b.Date, a.Date)
	})
	return sorted
}
