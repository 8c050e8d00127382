package exports

import "github.com/JaimeStill/reviewguard/pkg/openapi"

type spec struct {
	Create   *openapi.Operation
	List     *openapi.Operation
	Download *openapi.Operation
	Delete   *openapi.Operation
	Schemas  map[string]*openapi.Schema
}

var nameParam = openapi.StringPathParam("name", "Export file name")

// Spec documents the export endpoints.
var Spec = spec{
	Create: &openapi.Operation{
		Summary:     "Snapshot the ledger",
		Description: "Writes every recorded verdict to a JSON blob under exports/.",
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Export written", "Export"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	List: &openapi.Operation{
		Summary: "List ledger snapshots",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("marker", "string", "Continuation marker from a previous page", false),
			openapi.QueryParam("max_results", "integer", "Page size", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("One page of snapshots", "BlobList"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download a ledger snapshot",
		Parameters: []*openapi.Parameter{nameParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Snapshot document", "Snapshot"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a ledger snapshot",
		Parameters: []*openapi.Parameter{nameParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Snapshot deleted"},
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Export": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":      {Type: "string"},
				"key":       {Type: "string"},
				"records":   {Type: "integer"},
				"createdBy": {Type: "string"},
				"createdAt": {Type: "string", Format: "date-time"},
			},
		},
		"Snapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"createdBy": {Type: "string"},
				"createdAt": {Type: "string", Format: "date-time"},
				"records":   {Type: "array", Items: openapi.SchemaRef("Record")},
			},
		},
		"BlobList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"blobs": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"key":            {Type: "string"},
							"content_type":   {Type: "string"},
							"content_length": {Type: "integer"},
							"last_modified":  {Type: "string", Format: "date-time"},
						},
					},
				},
				"next_marker": {Type: "string"},
			},
		},
	},
}
