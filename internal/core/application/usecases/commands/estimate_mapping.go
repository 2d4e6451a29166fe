package commands

import (
	"errors"
	"fmt"

	"depot/internal/core/application/requests"
	"depot/internal/core/domain/model/estimate"
	"depot/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

func buildContent(
	condition, currency string,
	exchangeRate decimal.Decimal,
	total *decimal.Decimal,
	items []requests.EstimateLineItem,
) (estimate.Content, error) {
	parsedCondition, errCondition := estimate.ParseCondition(condition)
	parsedCurrency, errCurrency := kernel.NewCurrency(currency)
	rate, errRate := kernel.NewAmount("exchangeRate", exchangeRate)
	if err := errors.Join(errCondition, errCurrency, errRate); err != nil {
		return estimate.Content{}, err
	}

	lineItems := make([]estimate.LineItem, 0, len(items))
	for i, item := range items {
		lineItem, err := buildLineItem(item)
		if err != nil {
			return estimate.Content{}, fmt.Errorf("lineItems[%d]: %w", i, err)
		}
		lineItems = append(lineItems, lineItem)
	}

	return estimate.NewContent(parsedCondition, parsedCurrency, rate, lineItems, total)
}

func buildLineItem(item requests.EstimateLineItem) (estimate.LineItem, error) {
	hours, errHours := kernel.NewAmount("hours", item.Hours)
	materialCost, errMaterial := kernel.NewAmount("materialCost", item.MaterialCost)
	laborRate, errRate := kernel.NewAmount("laborRate", item.LaborRate)
	responsible, errParty := estimate.ParseResponsibleParty(item.Party)
	if err := errors.Join(errHours, errMaterial, errRate, errParty); err != nil {
		return estimate.LineItem{}, err
	}

	parts := make([]estimate.Part, 0, len(item.Parts))
	for i, p := range item.Parts {
		price, err := kernel.NewAmount("price", p.Price)
		if err != nil {
			return estimate.LineItem{}, fmt.Errorf("parts[%d]: %w", i, err)
		}
		part, err := estimate.NewPart(p.PartNumber, p.Quantity, price)
		if err != nil {
			return estimate.LineItem{}, fmt.Errorf("parts[%d]: %w", i, err)
		}
		parts = append(parts, part)
	}

	codes := estimate.Codes{
		Repair:    item.RepairCode,
		Damage:    item.DamageCode,
		Material:  item.MaterialCode,
		Component: item.ComponentCode,
		Location:  item.LocationCode,
	}
	return estimate.NewLineItem(codes, item.Description, hours, materialCost, laborRate,
		responsible, item.Quantity, parts)
}
