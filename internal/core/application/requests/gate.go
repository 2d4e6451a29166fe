package requests

import "time"

// Gate is a gate create or update request. The key is unit number, advice
// number, depot and type.
type Gate struct {
	UnitNumber   string    `json:"unitNumber"        validate:"required,unitnumber"`
	AdviceNumber string    `json:"adviceNumber"      validate:"required,max=20"`
	Depot        string    `json:"depot"             validate:"required,companyid"`
	Type         string    `json:"type"              validate:"required,oneof=IN OUT"`
	Status       string    `json:"status"            validate:"required,oneof=A D S"`
	ActivityTime time.Time `json:"activityTime"      validate:"required"`
	Remarks      string    `json:"remarks,omitempty" validate:"max=2048"`
}

type GateDelete struct {
	UnitNumber   string `json:"unitNumber"   validate:"required,unitnumber"`
	AdviceNumber string `json:"adviceNumber" validate:"required,max=20"`
	Depot        string `json:"depot"        validate:"required,companyid"`
	Type         string `json:"type"         validate:"required,oneof=IN OUT"`
}
