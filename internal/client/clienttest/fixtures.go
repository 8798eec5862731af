package clienttest

import "github.com/mmynk/billed/internal/models"

// Fixed values returned by Stub.Create.
const (
	CreatedFileURL = "https://localhost:3456/images/test.jpg"
	CreatedKey     = "1234"
)

// Fixtures returns four bills of employee "a@a" in non-chronological order.
func Fixtures() []models.Bill {
	return []models.Bill{
		{
			ID:           "47qAXb6fIm2zOKkLzMro",
			VAT:          "80",
			FileURL:      "https://test.storage.tld/v0/b/billable-677b6.a…f-1.jpg?alt=media&token=c1640e12-a24b-4b11-ae52-529112e9602a",
			Status:       models.StatusPending,
			Type:         models.ExpenseHotel,
			Commentary:   "séminaire billed",
			Name:         "encore",
			FileName:     "preview-facture-free-201801-pdf-1.jpg",
			Date:         "2004-04-04",
			Amount:       400,
			CommentAdmin: "ok",
			Email:        "a@a",
			Pct:          20,
		},
		{
			ID:           "BeKy5Mo4jkmdfPGYpTxZ",
			VAT:          "",
			Amount:       100,
			Name:         "test1",
			FileName:     "1592770761.jpeg",
			Commentary:   "plop",
			Pct:          20,
			Type:         models.ExpenseTransports,
			Email:        "a@a",
			FileURL:      "https://test.storage.tld/v0/b/billable-677b6.a…61.jpeg?alt=media&token=7685cd61-c112-42bc-9929-8a799bb82d8b",
			Date:         "2001-01-01",
			Status:       models.StatusRefused,
			CommentAdmin: "en fait non",
		},
		{
			ID:           "UIUZtnPQvnbFnB0ozvJh",
			Name:         "test3",
			Email:        "a@a",
			Type:         models.ExpenseOnline,
			VAT:          "60",
			Pct:          20,
			CommentAdmin: "bon bah d'accord",
			Amount:       300,
			Status:       models.StatusAccepted,
			Date:         "2003-03-03",
			Commentary:   "",
			FileName:     "facture-client-php-exportee-dans-document-pdf-enregistre-sur-disque-dur.png",
			FileURL:      "https://test.storage.tld/v0/b/billable-677b6.a…dur.png?alt=media&token=571d34cb-9c8f-430a-af52-66221cae1da3",
		},
		{
			ID:           "qcCK3SzECmaZAGRrHjaC",
			Status:       models.StatusRefused,
			Pct:          20,
			Amount:       200,
			Email:        "a@a",
			Name:         "test2",
			VAT:          "40",
			FileName:     "preview-facture-free-201801-pdf-1.jpg",
			Date:         "2002-02-02",
			CommentAdmin: "pas la bonne facture",
			Commentary:   "test2",
			Type:         models.ExpenseRestaurants,
			FileURL:      "https://test.storage.tld/v0/b/billable-677b6.a…f-1.jpg?alt=media&token=4df6ed2c-12c8-42a2-b013-346c1346f732",
		},
	}
}
