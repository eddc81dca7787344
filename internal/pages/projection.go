package pages

import "github.com/efoncier/survey-lab/pkg/query"

var projection = query.NewProjectionMap("public", "pages", "p").
	Project("id", "Id").
	Project("document_id", "DocumentId").
	Project("owner_id", "OwnerId").
	Project("sequence_number", "SequenceNumber").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("extraction_result", "ExtractionResult").
	Project("zones_result", "ZonesResult").
	Project("report_key", "ReportKey").
	Project("error", "Error").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "SequenceNumber"}
