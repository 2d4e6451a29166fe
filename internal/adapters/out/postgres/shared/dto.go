// Package shared holds column types embedded by several repositories.
package shared

import (
	"errors"
	"time"

	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"

	"gorm.io/gorm"
)

// RefDTO is an embedded party reference. Exactly the identifier the party is
// looked up by is filled.
type RefDTO struct {
	CompanyID string `gorm:"size:9"`
	Code      string `gorm:"size:20"`
}

func FromRef(ref party.Ref) RefDTO {
	return RefDTO{CompanyID: ref.CompanyID(), Code: ref.Code()}
}

func (d RefDTO) ToRef() party.Ref {
	return party.RestoreRef(d.CompanyID, d.Code)
}

// HeaderDTO is the embedded header of redeliveries and releases.
type HeaderDTO struct {
	Depot          RefDTO `gorm:"embedded;embeddedPrefix:depot_"`
	Recipient      RefDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	ApprovalDate   time.Time
	ExpirationDate *time.Time
	Remarks        string `gorm:"size:2048"`
}

func FromHeader(h advice.Header) HeaderDTO {
	return HeaderDTO{
		Depot:          FromRef(h.Depot()),
		Recipient:      FromRef(h.Recipient()),
		ApprovalDate:   h.ApprovalDate(),
		ExpirationDate: h.ExpirationDate(),
		Remarks:        h.Remarks(),
	}
}

// ToHeader rebuilds the header. numberParam names the business key in errors.
func (d HeaderDTO) ToHeader(numberParam, number string) (advice.Header, error) {
	return advice.NewHeader(
		numberParam, number,
		d.Depot.ToRef(), d.Recipient.ToRef(),
		d.ApprovalDate, d.ExpirationDate,
		d.Remarks,
	)
}

// TranslateCreateError maps a unique key violation to a conflict on the
// business key. The connection must be opened with TranslateError enabled.
func TranslateCreateError(paramName string, id any, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewAlreadyExistsError(paramName, id)
	}
	return err
}

// TranslateGetError maps a missing row to errs.ObjectNotFoundError.
func TranslateGetError(paramName string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	return err
}
