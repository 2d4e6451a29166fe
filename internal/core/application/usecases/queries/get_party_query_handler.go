package queries

import (
	"context"
	"database/sql"
	"errors"

	"depot/internal/core/domain/model/party"
	"depot/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetPartyQueryHandler struct {
	db *gorm.DB
}

func NewGetPartyQueryHandler(db *gorm.DB) GetPartyQueryHandler {
	return GetPartyQueryHandler{db: db}
}

func (h GetPartyQueryHandler) Handle(ctx context.Context, query GetPartyQuery) (GetPartyQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPartyQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			company_id,
			code,
			contact_name,
			contact_address,
			contact_city,
			contact_country,
			contact_phone,
			contact_emails
		FROM parties
		WHERE lookup_key = ?
	`, string(party.KeyOf(query.CompanyID().String(), ""))).Row()

	var (
		resp   GetPartyQueryResponse
		id     uuid.UUID
		kind   int
		emails pq.StringArray
	)
	err := row.Scan(
		&id,
		&kind,
		&resp.CompanyID,
		&resp.Code,
		&resp.Contact.Name,
		&resp.Contact.Address,
		&resp.Contact.City,
		&resp.Contact.Country,
		&resp.Contact.Phone,
		&emails,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPartyQueryResponse{}, errs.NewObjectNotFoundError("party", query.CompanyID().String())
	}
	if err != nil {
		return GetPartyQueryResponse{}, err
	}

	resp.ID = id.String()
	resp.Kind = party.Kind(kind).String()
	resp.Contact.Emails = emails
	return resp, nil
}
