package insights

import "github.com/JaimeStill/reviewguard/pkg/openapi"

type spec struct {
	Dashboard      *openapi.Operation
	AdminDashboard *openapi.Operation
	Schemas        map[string]*openapi.Schema
}

// Spec documents the dashboard endpoints.
var Spec = spec{
	Dashboard: &openapi.Operation{
		Summary:     "Dashboard over the caller's verdicts",
		Description: "Recomputed on every read.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Dashboard", "Dashboard"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	AdminDashboard: &openapi.Operation{
		Summary:     "Dashboard over every verdict",
		Description: "Adds the top five owners and the estimated number of actions taken.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Admin dashboard", "AdminDashboard"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Summary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total":         {Type: "integer"},
				"fakeCount":     {Type: "integer"},
				"realCount":     {Type: "integer"},
				"avgConfidence": {Type: "number", Description: "Mean confidence as a percentage, one decimal"},
			},
		},
		"Dashboard": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"summary":      openapi.SchemaRef("Summary"),
				"textReviews":  openapi.SchemaRef("Summary"),
				"productScans": openapi.SchemaRef("Summary"),
				"series": {
					Type:        "array",
					Description: "Seven daily buckets, oldest first",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"date":  {Type: "string", Format: "date"},
							"count": {Type: "integer"},
						},
					},
				},
				"confidenceTrend": {
					Type:        "array",
					Description: "Confidence percentage of the twenty most recent verdicts, oldest first",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"createdAt":  {Type: "string", Format: "date-time"},
							"confidence": {Type: "number"},
						},
					},
				},
				"ratingDistribution": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"stars": {Type: "integer"},
							"count": {Type: "integer"},
						},
					},
				},
				"badges": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"name":        {Type: "string"},
							"description": {Type: "string"},
							"unlocked":    {Type: "boolean"},
						},
					},
				},
			},
		},
		"AdminDashboard": {
			Type:        "object",
			Description: "Dashboard fields plus topUsers and actionsTaken",
			Properties: map[string]*openapi.Schema{
				"summary": openapi.SchemaRef("Summary"),
				"topUsers": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"name":  {Type: "string"},
							"count": {Type: "integer"},
						},
					},
				},
				"actionsTaken": {Type: "integer"},
			},
		},
	},
}
