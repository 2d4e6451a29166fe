package requests

import (
	"time"

	"github.com/shopspring/decimal"
)

type EstimatePart struct {
	PartNumber string          `json:"partNumber" validate:"required,max=20"`
	Quantity   int             `json:"quantity"   validate:"required,min=1,max=999"`
	Price      decimal.Decimal `json:"price"      validate:"gte=0"`
}

type EstimateLineItem struct {
	RepairCode    string          `json:"repairCode"             validate:"required,len=2,alnumcode"`
	DamageCode    string          `json:"damageCode,omitempty"   validate:"omitempty,len=2,alnumcode"`
	MaterialCode  string          `json:"materialCode,omitempty" validate:"omitempty,len=2,alnumcode"`
	ComponentCode string          `json:"componentCode"          validate:"required,len=3,alnumcode"`
	LocationCode  string          `json:"locationCode,omitempty" validate:"omitempty,len=4,alnumcode"`
	Description   string          `json:"description,omitempty"  validate:"max=255"`
	Hours         decimal.Decimal `json:"hours"                  validate:"gte=0"`
	MaterialCost  decimal.Decimal `json:"materialCost"           validate:"gte=0"`
	LaborRate     decimal.Decimal `json:"laborRate"              validate:"gte=0"`
	Party         string          `json:"party"                  validate:"required,oneof=O U I W S D X T"`
	Quantity      int             `json:"quantity,omitempty"     validate:"omitempty,min=1,max=999"`
	Parts         []EstimatePart  `json:"parts,omitempty"        validate:"dive"`
}

type Approval struct {
	ApprovedBy string    `json:"approvedBy"          validate:"required,max=100"`
	ApprovedAt time.Time `json:"approvedAt"          validate:"required"`
	Reference  string    `json:"reference,omitempty" validate:"max=20"`
}

// Estimate creates revision 1 of an estimate.
type Estimate struct {
	EstimateNumber string             `json:"estimateNumber"  validate:"required,max=20"`
	Depot          string             `json:"depot"           validate:"required,companyid"`
	UnitNumber     string             `json:"unitNumber"      validate:"required,unitnumber"`
	Condition      string             `json:"condition"       validate:"required,oneof=D E F G L"`
	Currency       string             `json:"currency"        validate:"required,currency"`
	ExchangeRate   decimal.Decimal    `json:"exchangeRate"    validate:"gte=0"`
	Total          *decimal.Decimal   `json:"total,omitempty" validate:"omitempty,gte=0"`
	LineItems      []EstimateLineItem `json:"lineItems"       validate:"required,min=1,dive"`
}

// EstimateRevision appends a revision to an existing estimate.
type EstimateRevision struct {
	Depot        string             `json:"depot"           validate:"required,companyid"`
	Condition    string             `json:"condition"       validate:"required,oneof=D E F G L"`
	Currency     string             `json:"currency"        validate:"required,currency"`
	ExchangeRate decimal.Decimal    `json:"exchangeRate"    validate:"gte=0"`
	Total        *decimal.Decimal   `json:"total,omitempty" validate:"omitempty,gte=0"`
	LineItems    []EstimateLineItem `json:"lineItems"       validate:"required,min=1,dive"`
}

type EstimateApproval struct {
	Depot    string   `json:"depot"    validate:"required,companyid"`
	Approval Approval `json:"approval"`
}

type EstimateCancel struct {
	Depot  string `json:"depot"            validate:"required,companyid"`
	Reason string `json:"reason,omitempty" validate:"max=255"`
}

type PreliminaryDecision struct {
	Recommendation string          `json:"recommendation"   validate:"required,max=10"`
	Reason         string          `json:"reason,omitempty" validate:"max=255"`
	Difference     decimal.Decimal `json:"difference"       validate:"gte=0"`
}

// EstimateAllocation asks for the totals of the current revision. CTL and the
// preliminary decision come from an external decision process.
type EstimateAllocation struct {
	Depot               string               `json:"depot"                         validate:"required,companyid"`
	CTL                 bool                 `json:"ctl"`
	PreliminaryDecision *PreliminaryDecision `json:"preliminaryDecision,omitempty"`
}
