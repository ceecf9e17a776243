package attendance

import "go-hr/internal/common/models"

// Record is one leave entry. The composite key is emp_id + leave_date +
// leave_type; leave_date is stored as YYYYMMDD so range filters are plain
// string comparisons.
type Record struct {
	EmpID        string  `json:"emp_id" bson:"emp_id"`
	LeaveDate    string  `json:"leave_date" bson:"leave_date"`
	LeaveType    string  `json:"leave_type" bson:"leave_type"`
	DayPeriod    string  `json:"day_period" bson:"day_period"`
	DurationDays float64 `json:"duration_days" bson:"duration_days"`
	JobLogged    string  `json:"job_logged" bson:"job_logged"`
	MynoteLogged string  `json:"mynote_logged" bson:"mynote_logged"`
	Substitute   string  `json:"substitute" bson:"substitute"`
	Remark       string  `json:"remark" bson:"remark"`

	// ChineseName is joined from the member collection on read; it is
	// never persisted with the record.
	ChineseName string `json:"chinese_name,omitempty" bson:"-"`
}

// Key identifies one record.
type Key struct {
	EmpID     string
	LeaveDate string
	LeaveType string
}

type Filter struct {
	models.ListQuery
	EmpID     string
	EmpName   string
	LeaveType string
	StartDate string
	EndDate   string
}
