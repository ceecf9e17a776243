package member

import "go-hr/internal/common/models"

// Member is one employee record, keyed by emp_id.
type Member struct {
	EmpID          string `json:"emp_id" bson:"emp_id"`
	ChineseName    string `json:"chinese_name" bson:"chinese_name"`
	Name           string `json:"name" bson:"name"`
	DivisionNo     string `json:"division_no" bson:"division_no"`
	DivisionName   string `json:"division_name" bson:"division_name"`
	JobTitle       string `json:"job_title" bson:"job_title"`
	Email          string `json:"email" bson:"email"`
	Cellphone      string `json:"cellphone" bson:"cellphone"`
	OfficePhone    string `json:"office_phone" bson:"office_phone"`
	Birthday       string `json:"birthday" bson:"birthday"`
	IsMember       bool   `json:"is_member" bson:"is_member"`
	IsManager      bool   `json:"is_manager" bson:"is_manager"`
	IsIntern       bool   `json:"is_intern" bson:"is_intern"`
	IsConsultant   bool   `json:"is_consultant" bson:"is_consultant"`
	IsOutsourcing  bool   `json:"is_outsourcing" bson:"is_outsourcing"`
	IsEmployed     bool   `json:"is_employed" bson:"is_employed"`
	LineID         string `json:"line_id" bson:"line_id"`
	TelegramID     string `json:"telegram_id" bson:"telegram_id"`
	Remark         string `json:"remark" bson:"remark"`
	BudgetUnitCode string `json:"budget_unit_code" bson:"budget_unit_code"`
	BudgetUnitName string `json:"budget_unit_name" bson:"budget_unit_name"`
}

// memberTypeFields maps the member_type multi-select filter values onto
// the boolean columns they stand for.
var memberTypeFields = map[string]string{
	"member":      "is_member",
	"manager":     "is_manager",
	"intern":      "is_intern",
	"consultant":  "is_consultant",
	"outsourcing": "is_outsourcing",
}

// Filter is the member list query: shared list params plus the
// member-specific filter fields.
type Filter struct {
	models.ListQuery
	Division    string
	IsEmployed  *bool
	MemberTypes []string
}
