package commands

import (
	"context"
	"fmt"
	"time"

	"depot/internal/core/application/requests"
	"depot/internal/core/domain/model/advice"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/redelivery"
	"depot/internal/core/domain/model/release"
)

func buildHeader(
	ctx context.Context,
	parties *partyResolver,
	numberParam, number string,
	depot requests.Party,
	recipient requests.ExternalParty,
	approvalDate time.Time,
	expirationDate *time.Time,
	remarks string,
) (advice.Header, error) {
	depotRef, err := parties.internal(ctx, depot)
	if err != nil {
		return advice.Header{}, fmt.Errorf("depot: %w", err)
	}
	recipientRef, err := parties.external(ctx, roleRecipient, recipient)
	if err != nil {
		return advice.Header{}, fmt.Errorf("recipient: %w", err)
	}
	return advice.NewHeader(numberParam, number, depotRef, recipientRef, approvalDate, expirationDate, remarks)
}

func buildRedelivery(
	ctx context.Context,
	parties *partyResolver,
	payload requests.Redelivery,
) (advice.Header, []redelivery.Detail, error) {
	header, err := buildHeader(ctx, parties, "redeliveryNumber", payload.RedeliveryNumber,
		payload.Depot, payload.Recipient, payload.ApprovalDate, payload.ExpirationDate, payload.Remarks)
	if err != nil {
		return advice.Header{}, nil, err
	}

	details := make([]redelivery.Detail, 0, len(payload.Details))
	for i, d := range payload.Details {
		detail, detailErr := buildRedeliveryDetail(ctx, parties, d)
		if detailErr != nil {
			return advice.Header{}, nil, fmt.Errorf("details[%d]: %w", i, detailErr)
		}
		details = append(details, detail)
	}
	return header, details, nil
}

func buildRedeliveryDetail(
	ctx context.Context,
	parties *partyResolver,
	d requests.RedeliveryDetail,
) (redelivery.Detail, error) {
	customer, err := parties.external(ctx, roleCustomer, d.Customer)
	if err != nil {
		return redelivery.Detail{}, err
	}
	insurance, err := parties.optional(ctx, roleInsuranceCoverage, d.InsuranceCoverage)
	if err != nil {
		return redelivery.Detail{}, err
	}
	billing, err := parties.optional(ctx, roleBillingParty, d.BillingParty)
	if err != nil {
		return redelivery.Detail{}, err
	}

	units := make([]redelivery.Unit, 0, len(d.Units))
	for i, u := range d.Units {
		unit, unitErr := buildRedeliveryUnit(ctx, parties, u)
		if unitErr != nil {
			return redelivery.Detail{}, fmt.Errorf("units[%d]: %w", i, unitErr)
		}
		units = append(units, unit)
	}

	return redelivery.NewDetail(customer, d.Contract, d.Equipment, insurance,
		d.InspectionCriteria, billing, d.Quantity, units)
}

func buildRedeliveryUnit(
	ctx context.Context,
	parties *partyResolver,
	u requests.RedeliveryUnit,
) (redelivery.Unit, error) {
	unitNumber, err := kernel.NewUnitNumber(u.UnitNumber)
	if err != nil {
		return redelivery.Unit{}, err
	}
	billing, err := parties.external(ctx, roleBillingParty, u.BillingParty)
	if err != nil {
		return redelivery.Unit{}, err
	}
	if u.Status == "" {
		return redelivery.NewUnit(unitNumber, u.ManufactureDate, u.LastOnHireDate, u.LastOnHireLocation, billing)
	}
	status, err := redelivery.ParseUnitStatus(u.Status)
	if err != nil {
		return redelivery.Unit{}, err
	}
	return redelivery.RestoreUnit(unitNumber, u.ManufactureDate, u.LastOnHireDate, u.LastOnHireLocation, status, billing)
}

func buildRelease(
	ctx context.Context,
	parties *partyResolver,
	payload requests.Release,
) (advice.Header, release.Type, []release.Detail, error) {
	kind, err := release.ParseType(payload.Type)
	if err != nil {
		return advice.Header{}, release.TypeUnknown, nil, err
	}
	header, err := buildHeader(ctx, parties, "releaseNumber", payload.ReleaseNumber,
		payload.Depot, payload.Recipient, payload.ApprovalDate, payload.ExpirationDate, payload.Remarks)
	if err != nil {
		return advice.Header{}, release.TypeUnknown, nil, err
	}

	details := make([]release.Detail, 0, len(payload.Details))
	for i, d := range payload.Details {
		detail, detailErr := buildReleaseDetail(ctx, parties, d)
		if detailErr != nil {
			return advice.Header{}, release.TypeUnknown, nil, fmt.Errorf("details[%d]: %w", i, detailErr)
		}
		details = append(details, detail)
	}
	return header, kind, details, nil
}

func buildReleaseDetail(ctx context.Context, parties *partyResolver, d requests.ReleaseDetail) (release.Detail, error) {
	customer, err := parties.external(ctx, roleCustomer, d.Customer)
	if err != nil {
		return release.Detail{}, err
	}

	criteria := make([]release.Criterion, 0, len(d.Criteria))
	for i, c := range d.Criteria {
		criterion, criterionErr := release.NewCriterion(c.Key, c.Value)
		if criterionErr != nil {
			return release.Detail{}, fmt.Errorf("criteria[%d]: %w", i, criterionErr)
		}
		criteria = append(criteria, criterion)
	}

	units := make([]release.Unit, 0, len(d.Units))
	for i, u := range d.Units {
		unit, unitErr := buildReleaseUnit(u)
		if unitErr != nil {
			return release.Detail{}, fmt.Errorf("units[%d]: %w", i, unitErr)
		}
		units = append(units, unit)
	}

	return release.NewDetail(customer, d.Contract, d.Equipment, d.Quantity, criteria, units)
}

func buildReleaseUnit(u requests.ReleaseUnit) (release.Unit, error) {
	unitNumber, err := kernel.NewUnitNumber(u.UnitNumber)
	if err != nil {
		return release.Unit{}, err
	}
	if u.Status == "" {
		return release.NewUnit(unitNumber)
	}
	status, err := release.ParseUnitStatus(u.Status)
	if err != nil {
		return release.Unit{}, err
	}
	return release.RestoreUnit(unitNumber, status)
}
