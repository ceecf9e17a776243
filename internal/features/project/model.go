package project

import "go-hr/internal/common/models"

// Project statuses follow the code table convention of short codes with
// display handled by the console.
const (
	StatusPlanning = "planning"
	StatusActive   = "active"
	StatusOnHold   = "on_hold"
	StatusClosed   = "closed"
)

var validStatuses = map[string]bool{
	StatusPlanning: true,
	StatusActive:   true,
	StatusOnHold:   true,
	StatusClosed:   true,
}

type Project struct {
	ProjectNo   string `json:"project_no" bson:"project_no"`
	Name        string `json:"name" bson:"name"`
	OwnerEmpID  string `json:"owner_emp_id" bson:"owner_emp_id"`
	Status      string `json:"status" bson:"status"`
	StartDate   string `json:"start_date" bson:"start_date"`
	EndDate     string `json:"end_date" bson:"end_date"`
	Description string `json:"description" bson:"description"`
}

type Filter struct {
	models.ListQuery
	Owner  string
	Status string
}
