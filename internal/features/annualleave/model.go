package annualleave

import "go-hr/internal/common/models"

// Balance is one employee's leave allowance for one year and leave type.
// Remaining is derived, never stored.
type Balance struct {
	EmpID       string  `json:"emp_id" bson:"emp_id"`
	Year        string  `json:"year" bson:"year"`
	LeaveType   string  `json:"leave_type" bson:"leave_type"`
	GrantedDays float64 `json:"granted_days" bson:"granted_days"`
	CarriedDays float64 `json:"carried_days" bson:"carried_days"`
	UsedDays    float64 `json:"used_days" bson:"used_days"`
	Remark      string  `json:"remark" bson:"remark"`
}

// Remaining is what the employee can still take this year.
func (b Balance) Remaining() float64 {
	return b.GrantedDays + b.CarriedDays - b.UsedDays
}

// BalanceView is the wire shape; it adds the derived remaining_days.
type BalanceView struct {
	Balance
	RemainingDays float64 `json:"remaining_days"`
}

type Key struct {
	EmpID     string
	Year      string
	LeaveType string
}

type Filter struct {
	models.ListQuery
	EmpID     string
	Year      string
	LeaveType string
}
