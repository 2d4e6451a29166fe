package requests

import "time"

type RedeliveryUnit struct {
	UnitNumber         string        `json:"unitNumber"                   validate:"required,unitnumber"`
	ManufactureDate    time.Time     `json:"manufactureDate"              validate:"required"`
	LastOnHireDate     *time.Time    `json:"lastOnHireDate,omitempty"`
	LastOnHireLocation string        `json:"lastOnHireLocation,omitempty" validate:"max=100"`
	Status             string        `json:"status,omitempty"             validate:"omitempty,oneof=TIED REMOVED TIN"`
	BillingParty       ExternalParty `json:"billingParty"`
}

type RedeliveryDetail struct {
	Customer           ExternalParty    `json:"customer"`
	Contract           string           `json:"contract"                     validate:"required,max=20"`
	Equipment          string           `json:"equipment"                    validate:"required,max=10"`
	InsuranceCoverage  *ExternalParty   `json:"insuranceCoverage,omitempty"`
	InspectionCriteria string           `json:"inspectionCriteria,omitempty" validate:"max=20"`
	BillingParty       *ExternalParty   `json:"billingParty,omitempty"`
	Quantity           int              `json:"quantity"                     validate:"required,min=1,max=9999"`
	Units              []RedeliveryUnit `json:"units,omitempty"              validate:"dive"`
}

type Redelivery struct {
	RedeliveryNumber string             `json:"redeliveryNumber"         validate:"required,max=20"`
	Depot            Party              `json:"depot"`
	Recipient        ExternalParty      `json:"recipient"`
	ApprovalDate     time.Time          `json:"approvalDate"             validate:"required"`
	ExpirationDate   *time.Time         `json:"expirationDate,omitempty"`
	Remarks          string             `json:"remarks,omitempty"        validate:"max=2048"`
	Details          []RedeliveryDetail `json:"details"                  validate:"required,min=1,dive"`
}

type ReleaseCriterion struct {
	Key   string `json:"key"   validate:"required,max=20"`
	Value string `json:"value" validate:"required,max=100"`
}

type ReleaseUnit struct {
	UnitNumber string `json:"unitNumber"       validate:"required,unitnumber"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=TIED REMOVED LOT CANDIDATE"`
}

type ReleaseDetail struct {
	Customer  ExternalParty      `json:"customer"`
	Contract  string             `json:"contract"           validate:"required,max=20"`
	Equipment string             `json:"equipment"          validate:"required,max=10"`
	Quantity  int                `json:"quantity"           validate:"required,min=1,max=9999"`
	Criteria  []ReleaseCriterion `json:"criteria,omitempty" validate:"dive"`
	Units     []ReleaseUnit      `json:"units,omitempty"    validate:"dive"`
}

type Release struct {
	ReleaseNumber  string          `json:"releaseNumber"            validate:"required,max=20"`
	Type           string          `json:"type"                     validate:"required,oneof=SALE BOOK REPO"`
	Owner          ExternalParty   `json:"owner"`
	Depot          Party           `json:"depot"`
	Recipient      ExternalParty   `json:"recipient"`
	ApprovalDate   time.Time       `json:"approvalDate"             validate:"required"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	Remarks        string          `json:"remarks,omitempty"        validate:"max=2048"`
	Details        []ReleaseDetail `json:"details"                  validate:"required,min=1,dive"`
}
