package codetable

import "go-hr/internal/common/models"

// leaveTypeCode is the code table category holding the leave types.
const leaveTypeCode = "0001"

// Code is one row of the shared lookup table. code_code groups a
// category, code_subcode identifies the entry within it.
type Code struct {
	CodeCode    string `json:"code_code" bson:"code_code"`
	CodeSubcode string `json:"code_subcode" bson:"code_subcode"`
	CodeSubname string `json:"code_subname" bson:"code_subname"`
	CodeContent string `json:"code_content" bson:"code_content"`
	Sysmark     string `json:"sysmark" bson:"sysmark"`
	UsedMark    string `json:"used_mark" bson:"used_mark"`
	UpdUserID   string `json:"upd_userid" bson:"upd_userid"`
	ChkUserID   string `json:"chk_userid" bson:"chk_userid"`
	UpdDate     string `json:"upddate" bson:"upddate"`
	UpdTime     string `json:"updtime" bson:"updtime"`
	Remark      string `json:"remark" bson:"remark"`
}

type Key struct {
	CodeCode    string
	CodeSubcode string
}

type Filter struct {
	models.ListQuery
	CodeCode string
	UsedMark string
}
