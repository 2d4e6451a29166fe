package estimate

import (
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrContentIsNotConstructed  = errors.New("Content must be created via NewContent constructor")
	ErrApprovalIsNotConstructed = errors.New("Approval must be created via NewApproval constructor")
)

// Content is the priced body of a revision.
type Content struct {
	condition    Condition
	currency     kernel.Currency
	exchangeRate kernel.Amount
	lineItems    []LineItem
	totals       Totals
	guard        guard.ConstructorGuard
}

// NewContent computes the totals of lineItems. When suppliedTotal is given it
// must equal the computed grand total.
func NewContent(
	condition Condition,
	currency kernel.Currency,
	exchangeRate kernel.Amount,
	lineItems []LineItem,
	suppliedTotal *decimal.Decimal,
) (Content, error) {
	c := Content{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		condition.Validate(),
		currency.Validate(),
		exchangeRate.Validate(),
		c.setLineItems(lineItems),
	); err != nil {
		return Content{}, err
	}
	c.condition = condition
	c.currency = currency
	c.exchangeRate = exchangeRate
	c.totals = ComputeTotals(c.lineItems)

	if suppliedTotal != nil && !suppliedTotal.Equal(c.totals.Total) {
		return Content{}, errs.NewInvariantViolatedError("",
			fmt.Sprintf("total %s does not match line items total %s", suppliedTotal, c.totals.Total))
	}
	return c, nil
}

func (c Content) Validate() error             { return c.guard.Validate(ErrContentIsNotConstructed) }
func (c Content) Condition() Condition        { return c.condition }
func (c Content) Currency() kernel.Currency   { return c.currency }
func (c Content) ExchangeRate() kernel.Amount { return c.exchangeRate }
func (c Content) Totals() Totals              { return c.totals }
func (c Content) LineItems() []LineItem       { return append([]LineItem(nil), c.lineItems...) }

func (c *Content) setLineItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("lineItems[%d]: %w", i, err)
		}
	}
	c.lineItems = append([]LineItem(nil), items...)
	return nil
}

// Approval is the customer's sign-off on a revision.
type Approval struct {
	approvedBy string
	approvedAt time.Time
	reference  string
	guard      guard.ConstructorGuard
}

func NewApproval(approvedBy string, approvedAt time.Time, reference string) (Approval, error) {
	a := Approval{guard: guard.NewConstructorGuard()}
	var errBy, errAt, errReference error
	a.approvedBy, errBy = kernel.RequiredText("approvedBy", approvedBy, kernel.NameMaxLength)
	a.reference, errReference = kernel.BoundedText("reference", reference, kernel.KeyMaxLength)
	if approvedAt.IsZero() {
		errAt = errs.NewValueIsRequiredError("approvedAt")
	}
	if err := errors.Join(errBy, errAt, errReference); err != nil {
		return Approval{}, err
	}
	a.approvedAt = approvedAt.UTC()
	return a, nil
}

func (a Approval) Validate() error       { return a.guard.Validate(ErrApprovalIsNotConstructed) }
func (a Approval) ApprovedBy() string    { return a.approvedBy }
func (a Approval) ApprovedAt() time.Time { return a.approvedAt }
func (a Approval) Reference() string     { return a.reference }

// Revision is an immutable snapshot of an estimate.
type Revision struct {
	number   int
	content  Content
	approval *Approval
	created  time.Time
}

// RestoreRevision rebuilds a stored revision.
func RestoreRevision(number int, content Content, approval *Approval, created time.Time) (*Revision, error) {
	if number < 1 {
		return nil, errs.NewRevisionIsInvalidErrorWithCause("revision", fmt.Errorf("%d is not positive", number))
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}
	if approval != nil {
		if err := approval.Validate(); err != nil {
			return nil, err
		}
		a := *approval
		approval = &a
	}
	return &Revision{number: number, content: content, approval: approval, created: created.UTC()}, nil
}

func (r *Revision) Number() int          { return r.number }
func (r *Revision) Content() Content     { return r.content }
func (r *Revision) CreatedAt() time.Time { return r.created }
func (r *Revision) IsApproved() bool     { return r.approval != nil }

// CustomerApproval returns nil for unapproved revisions.
func (r *Revision) CustomerApproval() *Approval {
	if r.approval == nil {
		return nil
	}
	a := *r.approval
	return &a
}
