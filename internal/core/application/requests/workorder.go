package requests

type WorkOrderUnit struct {
	UnitNumber string `json:"unitNumber" validate:"required,unitnumber"`
}

type WorkOrder struct {
	WorkOrderNumber  string          `json:"workOrderNumber"            validate:"required,max=20"`
	Depot            Party           `json:"depot"`
	Owner            ExternalParty   `json:"owner"`
	TargetCriteria   string          `json:"targetCriteria"             validate:"required,max=20"`
	EstimateNumber   string          `json:"estimateNumber,omitempty"   validate:"max=20"`
	EstimateRevision int             `json:"estimateRevision,omitempty" validate:"required_with=EstimateNumber,omitempty,min=1"`
	Remarks          string          `json:"remarks,omitempty"          validate:"max=2048"`
	Units            []WorkOrderUnit `json:"units"                      validate:"required,min=1,dive"`
}
