package estimate

import (
	"errors"
	"fmt"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
	ErrPartIsNotConstructed     = errors.New("Part must be created via NewPart constructor")
)

// Fixed lengths of the repair coding.
const (
	RepairCodeLength    = 2
	DamageCodeLength    = 2
	MaterialCodeLength  = 2
	ComponentCodeLength = 3
	LocationCodeLength  = 4

	MaxQuantity = 999
)

// Part is a spare part consumed by a line item.
type Part struct {
	number   string
	quantity int
	price    kernel.Amount
	guard    guard.ConstructorGuard
}

func NewPart(number string, quantity int, price kernel.Amount) (Part, error) {
	p := Part{guard: guard.NewConstructorGuard()}

	var errNumber, errQuantity error
	p.number, errNumber = kernel.RequiredText("partNumber", number, kernel.KeyMaxLength)
	if quantity < 1 || quantity > MaxQuantity {
		errQuantity = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	if err := errors.Join(errNumber, errQuantity, price.Validate()); err != nil {
		return Part{}, err
	}
	p.quantity = quantity
	p.price = price
	return p, nil
}

func (p Part) Validate() error      { return p.guard.Validate(ErrPartIsNotConstructed) }
func (p Part) Number() string       { return p.number }
func (p Part) Quantity() int        { return p.quantity }
func (p Part) Price() kernel.Amount { return p.price }

// Cost is quantity times price.
func (p Part) Cost() decimal.Decimal {
	return p.price.Decimal().Mul(decimal.NewFromInt(int64(p.quantity)))
}

// Codes is the repair coding of a line item. Repair and component codes are
// mandatory; the others may be left empty.
type Codes struct {
	Repair    string
	Damage    string
	Material  string
	Component string
	Location  string
}

func (c Codes) validate() error {
	_, errRepair := kernel.FixedCode("repairCode", c.Repair, RepairCodeLength, true)
	_, errDamage := kernel.FixedCode("damageCode", c.Damage, DamageCodeLength, false)
	_, errMaterial := kernel.FixedCode("materialCode", c.Material, MaterialCodeLength, false)
	_, errComponent := kernel.FixedCode("componentCode", c.Component, ComponentCodeLength, true)
	_, errLocation := kernel.FixedCode("locationCode", c.Location, LocationCodeLength, false)
	return errors.Join(errRepair, errDamage, errMaterial, errComponent, errLocation)
}

// LineItem is one repair on the estimate, charged to a responsible party.
type LineItem struct {
	codes        Codes
	description  string
	hours        kernel.Amount
	materialCost kernel.Amount
	laborRate    kernel.Amount
	party        ResponsibleParty
	quantity     int
	parts        []Part
	guard        guard.ConstructorGuard
}

// NewLineItem validates a line item. A quantity of 0 means not supplied and
// defaults to 1.
func NewLineItem(
	codes Codes,
	description string,
	hours, materialCost, laborRate kernel.Amount,
	party ResponsibleParty,
	quantity int,
	parts []Part,
) (LineItem, error) {
	l := LineItem{codes: codes, party: party, guard: guard.NewConstructorGuard()}

	if quantity == 0 {
		quantity = 1
	}
	var errQuantity, errDescription error
	if quantity < 1 || quantity > MaxQuantity {
		errQuantity = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	l.description, errDescription = kernel.BoundedText("description", description, kernel.AddressMaxLength)

	if err := errors.Join(
		codes.validate(),
		errDescription,
		hours.Validate(),
		materialCost.Validate(),
		laborRate.Validate(),
		party.Validate(),
		errQuantity,
		l.setParts(parts),
	); err != nil {
		return LineItem{}, err
	}
	l.hours = hours
	l.materialCost = materialCost
	l.laborRate = laborRate
	l.quantity = quantity
	return l, nil
}

func (l LineItem) Validate() error             { return l.guard.Validate(ErrLineItemIsNotConstructed) }
func (l LineItem) Codes() Codes                { return l.codes }
func (l LineItem) Description() string         { return l.description }
func (l LineItem) Hours() kernel.Amount        { return l.hours }
func (l LineItem) MaterialCost() kernel.Amount { return l.materialCost }
func (l LineItem) LaborRate() kernel.Amount    { return l.laborRate }
func (l LineItem) Party() ResponsibleParty     { return l.party }
func (l LineItem) Quantity() int               { return l.quantity }
func (l LineItem) Parts() []Part               { return append([]Part(nil), l.parts...) }

// Cost is (hours * laborRate + materialCost + parts) * quantity.
func (l LineItem) Cost() decimal.Decimal {
	cost := l.hours.Decimal().Mul(l.laborRate.Decimal()).Add(l.materialCost.Decimal())
	for _, p := range l.parts {
		cost = cost.Add(p.Cost())
	}
	return cost.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l *LineItem) setParts(parts []Part) error {
	for i, p := range parts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("parts[%d]: %w", i, err)
		}
	}
	l.parts = append([]Part(nil), parts...)
	return nil
}
