package advice

import (
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrHeaderIsNotConstructed = errors.New("Header must be created via NewHeader constructor")

// Header carries the fields shared by redelivery and release advices.
type Header struct {
	number         string
	depot          party.Ref
	recipient      party.Ref
	approvalDate   time.Time
	expirationDate *time.Time
	remarks        string
	guard          guard.ConstructorGuard
}

// NewHeader validates the advice header. numberParam names the business key
// in errors ("redeliveryNumber", "releaseNumber").
func NewHeader(
	numberParam, number string,
	depot, recipient party.Ref,
	approvalDate time.Time,
	expirationDate *time.Time,
	remarks string,
) (Header, error) {
	h := Header{guard: guard.NewConstructorGuard()}

	var errNumber, errRemarks error
	h.number, errNumber = kernel.RequiredText(numberParam, number, kernel.KeyMaxLength)
	h.remarks, errRemarks = kernel.BoundedText("remarks", remarks, kernel.RemarksMaxLength)

	if err := errors.Join(
		errNumber,
		errRemarks,
		RequiredRef("depot", depot),
		RequiredRef("recipient", recipient),
		h.setDates(approvalDate, expirationDate),
	); err != nil {
		return Header{}, err
	}

	h.depot = depot
	h.recipient = recipient
	return h, nil
}

func (h Header) Validate() error {
	return h.guard.Validate(ErrHeaderIsNotConstructed)
}

func (h Header) Number() string          { return h.number }
func (h Header) Depot() party.Ref        { return h.depot }
func (h Header) Recipient() party.Ref    { return h.recipient }
func (h Header) ApprovalDate() time.Time { return h.approvalDate }
func (h Header) Remarks() string         { return h.remarks }

// ExpirationDate returns nil when the advice does not expire.
func (h Header) ExpirationDate() *time.Time {
	if h.expirationDate == nil {
		return nil
	}
	v := *h.expirationDate
	return &v
}

func (h *Header) setDates(approvalDate time.Time, expirationDate *time.Time) error {
	if approvalDate.IsZero() {
		return errs.NewValueIsRequiredError("approvalDate")
	}
	h.approvalDate = approvalDate.UTC()

	if expirationDate == nil {
		return nil
	}
	if expirationDate.Before(approvalDate) {
		return errs.NewValueIsInvalidErrorWithCause("expirationDate",
			fmt.Errorf("%s is before approvalDate %s",
				expirationDate.Format(time.RFC3339), approvalDate.Format(time.RFC3339)))
	}
	v := expirationDate.UTC()
	h.expirationDate = &v
	return nil
}

// RequiredRef reports a missing mandatory party reference.
func RequiredRef(paramName string, ref party.Ref) error {
	if ref.IsZero() {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
