package containers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/qmuntal/stateless"

	"github.com/mmynk/billed/internal/client"
	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/routes"
	"github.com/mmynk/billed/internal/views"
)

var (
	// ErrReceiptExtension is returned for receipts that are not jpg, jpeg
	// or png files.
	ErrReceiptExtension = errors.New("receipt must be a jpg, jpeg or png file")

	errNoStore = errors.New("no remote store")
)

// State is the submission state of the new-bill form.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
	StateRejected   State = "rejected"
)

type trigger string

const (
	triggerEdit    trigger = "edit"
	triggerSubmit  trigger = "submit"
	triggerAccept  trigger = "accept"
	triggerReject  trigger = "reject"
	triggerSucceed trigger = "succeed"
	triggerFail    trigger = "fail"
)

func newSubmissionMachine() *stateless.StateMachine {
	machine := stateless.NewStateMachine(StateEditing)

	machine.Configure(StateEditing).
		Permit(triggerSubmit, StateValidating).
		PermitReentry(triggerEdit)

	machine.Configure(StateValidating).
		Permit(triggerAccept, StateSubmitting).
		Permit(triggerReject, StateRejected)

	machine.Configure(StateSubmitting).
		Permit(triggerSucceed, StateDone).
		Permit(triggerFail, StateEditing)

	machine.Configure(StateRejected).
		Permit(triggerEdit, StateEditing).
		Permit(triggerSubmit, StateValidating)

	return machine
}

// NewBill is the container of the new-bill form.
type NewBill struct {
	deps    Deps
	layout  views.Layout
	machine *stateless.StateMachine

	form     views.BillForm
	receipt  *client.Receipt
	fileName string
	fileURL  string
	billID   string
}

// NewNewBill returns the new-bill container in the editing state.
func NewNewBill(deps Deps) *NewBill {
	return &NewBill{
		deps:    deps,
		layout:  views.LayoutFor(deps.user(), views.IconMail),
		machine: newSubmissionMachine(),
	}
}

// Mount renders the empty form.
func (n *NewBill) Mount(context.Context) {
	n.render()
}

// HandleChangeFile stages the receipt selected by the employee. A file
// whose extension is not accepted clears the staged receipt and returns
// ErrReceiptExtension.
func (n *NewBill) HandleChangeFile(ctx context.Context, fileName string, content []byte) error {
	if err := n.machine.FireCtx(ctx, triggerEdit); err != nil {
		return fmt.Errorf("change file: %w", err)
	}

	if !models.IsAllowedReceipt(fileName) {
		n.receipt = nil
		n.fileName = ""
		n.fileURL = ""
		n.deps.Metrics.SubmissionRejected("file_type")
		slog.Debug("Receipt rejected", "file", fileName)
		return fmt.Errorf("%w: %s", ErrReceiptExtension, fileName)
	}

	n.receipt = &client.Receipt{FileName: fileName, Content: content}
	n.fileName = fileName
	return nil
}

// HandleSubmit submits form with the staged receipt. An invalid form is
// rejected without calling the remote store: the form is rendered again
// and HandleSubmit returns nil. A valid form is uploaded with Create,
// completed with Update and the employee is sent to the bills list.
// Remote failures keep the form on screen and are returned.
func (n *NewBill) HandleSubmit(ctx context.Context, form views.BillForm) error {
	if err := n.machine.FireCtx(ctx, triggerSubmit); err != nil {
		return fmt.Errorf("submit bill: %w", err)
	}
	n.form = form

	sub := submission{
		FileName: n.fileName,
		Type:     string(form.Type),
		Date:     form.Date,
		Amount:   form.Amount,
		VAT:      form.VAT,
		Pct:      form.Pct,
	}
	if err := sub.check(); err != nil {
		slog.Debug("Bill rejected", "error", err)
		n.deps.Metrics.SubmissionRejected("invalid_form")
		n.render()
		return n.machine.FireCtx(ctx, triggerReject)
	}
	if err := n.machine.FireCtx(ctx, triggerAccept); err != nil {
		return err
	}

	bill, err := n.submit(ctx, n.candidate(form))
	if err != nil {
		slog.Error("Failed to submit bill", "file", n.fileName, "error", err)
		n.render()
		return errors.Join(err, n.machine.FireCtx(ctx, triggerFail))
	}
	if err := n.machine.FireCtx(ctx, triggerSucceed); err != nil {
		return err
	}

	slog.Info("Bill submitted", "bill_id", bill.ID, "email", bill.Email)
	n.deps.Navigate(ctx, routes.Bills)
	return nil
}

func (n *NewBill) candidate(form views.BillForm) models.Bill {
	amount, _ := strconv.ParseFloat(form.Amount, 64)
	pct, _ := strconv.Atoi(form.Pct)
	if pct == 0 {
		pct = models.DefaultPct
	}
	return models.Bill{
		Email:      n.deps.user().Email,
		Type:       form.Type,
		Name:       form.Name,
		Amount:     amount,
		Date:       form.Date,
		VAT:        form.VAT,
		Pct:        pct,
		Commentary: form.Commentary,
		FileName:   n.fileName,
		Status:     models.StatusPending,
	}
}

func (n *NewBill) submit(ctx context.Context, bill models.Bill) (*models.Bill, error) {
	if n.deps.Store == nil {
		return nil, errNoStore
	}
	bills := n.deps.Store.Bills()

	created, err := bills.Create(ctx, *n.receipt)
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	n.billID = created.Key
	n.fileURL = created.FileURL

	bill.ID = created.Key
	bill.FileURL = created.FileURL
	updated, err := bills.Update(ctx, n.billID, bill)
	if err != nil {
		return nil, fmt.Errorf("update bill %s: %w", n.billID, err)
	}
	return updated, nil
}

// State returns the submission state.
func (n *NewBill) State() State {
	return n.machine.MustState().(State)
}

// BillID returns the key assigned by Create, or "" before a successful
// upload.
func (n *NewBill) BillID() string { return n.billID }

// FileName returns the staged receipt name.
func (n *NewBill) FileName() string { return n.fileName }

// FileURL returns the receipt URL assigned by Create.
func (n *NewBill) FileURL() string { return n.fileURL }

func (n *NewBill) render() {
	n.deps.Document.Replace(views.NewBill(views.NewBillPage{
		Layout: n.layout,
		Form:   n.form,
	}))
}
