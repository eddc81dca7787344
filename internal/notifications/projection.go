package notifications

import "github.com/efoncier/survey-lab/pkg/query"

var projection = query.NewProjectionMap("public", "notifications", "n").
	Project("id", "Id").
	Project("user_id", "UserId").
	Project("title", "Title").
	Project("message", "Message").
	Project("severity", "Severity").
	Project("read", "Read").
	Project("result_id", "ResultId").
	Project("report_url", "ReportUrl").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}
