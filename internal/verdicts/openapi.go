package verdicts

import "github.com/JaimeStill/reviewguard/pkg/openapi"

type spec struct {
	Submit       *openapi.Operation
	SubmitBatch  *openapi.Operation
	History      *openapi.Operation
	Find         *openapi.Operation
	Delete       *openapi.Operation
	AdminHistory *openapi.Operation
	Search       *openapi.Operation
	SearchBody   *openapi.Operation
	Schemas      map[string]*openapi.Schema
}

// Spec documents the verdict endpoints.
var Spec = spec{
	Submit: &openapi.Operation{
		Summary:     "Score a review or product URL",
		Description: "Returns a Fake or Real verdict with confidence and reasons. Authenticated callers have the verdict recorded to their history.",
		RequestBody: openapi.RequestBodyJSON("Submission", true),
		Security:    openapi.OptionalAuth,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Verdict", "Verdict"),
			400: openapi.ResponseRef("BadRequest"),
			502: openapi.ResponseRef("BadGateway"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	SubmitBatch: &openapi.Operation{
		Summary:     "Score several submissions concurrently",
		Description: "Each item carries its own status so one failure does not fail the batch.",
		RequestBody: openapi.RequestBodyJSON("BatchRequest", true),
		Security:    openapi.OptionalAuth,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Per-item results in request order", "BatchResult"),
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "Batch exceeds the configured limit"},
		},
	},
	History: &openapi.Operation{
		Summary:     "List the caller's verdicts",
		Description: "Newest first.",
		Responses: map[int]*openapi.Response{
			200: recordList("Verdict history"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get a recorded verdict",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Verdict UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recorded verdict", "Record"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete a recorded verdict",
		Description: "Owners may delete their own verdicts and admins may delete any. Deleting a missing verdict succeeds.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Verdict UUID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Verdict deleted"},
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	AdminHistory: &openapi.Operation{
		Summary:     "List every recorded verdict",
		Description: "Newest first, with owner display names.",
		Responses: map[int]*openapi.Response{
			200: recordList("All verdicts"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	Search: &openapi.Operation{
		Summary: "Search recorded verdicts",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("pageSize", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search review text, product, and reviewer", false),
			openapi.QueryParam("sort", "string", "Sort fields, e.g. -CreatedAt,Confidence", false),
			openapi.QueryParam("prediction", "string", "Fake or Real", false),
			openapi.QueryParam("kind", "string", "text or url", false),
			openapi.QueryParam("owner", "string", "Owner id", false),
			openapi.QueryParam("ownerName", "string", "Owner display name contains", false),
			openapi.QueryParam("product", "string", "Product name contains", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of verdicts", "RecordPage"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	SearchBody: &openapi.Operation{
		Summary:     "Search recorded verdicts with a JSON body",
		RequestBody: openapi.RequestBodyJSON("SearchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of verdicts", "RecordPage"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Submission": {
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]*openapi.Schema{
				"text":             {Type: "string", Description: "Review text, or a product URL when isUrlAnalysis is set"},
				"productName":      {Type: "string"},
				"productUrl":       {Type: "string"},
				"reviewerName":     {Type: "string"},
				"rating":           {Type: "integer", Minimum: new(0.0), Maximum: new(5.0)},
				"reviewDate":       {Type: "string", Format: "date"},
				"verifiedPurchase": {Type: "boolean"},
				"isUrlAnalysis":    {Type: "boolean"},
			},
		},
		"BatchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"submissions": {Type: "array", Items: openapi.SchemaRef("Submission")},
			},
		},
		"Verdict": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid", Description: "Set when the verdict was recorded"},
				"prediction": {Type: "string", Enum: []any{"Fake", "Real"}},
				"confidence": {Type: "number", Minimum: new(0.0), Maximum: new(1.0)},
				"reasons":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"scan":       openapi.SchemaRef("Scan"),
			},
		},
		"Scan": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"productName":  {Type: "string"},
				"totalReviews": {Type: "integer"},
				"sentiment": {
					Type:        "object",
					Description: "Sentiment split in percent",
					Properties: map[string]*openapi.Schema{
						"positive": {Type: "integer"},
						"negative": {Type: "integer"},
						"neutral":  {Type: "integer"},
					},
				},
			},
		},
		"BatchResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"index":   {Type: "integer"},
				"status":  {Type: "integer"},
				"verdict": openapi.SchemaRef("Verdict"),
				"error":   {Type: "string"},
			},
		},
		"Record": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"ownerId":          {Type: "string"},
				"ownerName":        {Type: "string"},
				"sourceText":       {Type: "string"},
				"productName":      {Type: "string"},
				"productUrl":       {Type: "string"},
				"reviewerName":     {Type: "string"},
				"rating":           {Type: "integer"},
				"reviewDate":       {Type: "string", Format: "date-time"},
				"verifiedPurchase": {Type: "boolean"},
				"isUrlAnalysis":    {Type: "boolean"},
				"prediction":       {Type: "string", Enum: []any{"Fake", "Real"}},
				"confidence":       {Type: "number"},
				"detectionReasons": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"createdAt":        {Type: "string", Format: "date-time"},
			},
		},
		"RecordPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":       {Type: "array", Items: openapi.SchemaRef("Record")},
				"total":      {Type: "integer"},
				"page":       {Type: "integer"},
				"pageSize":   {Type: "integer"},
				"totalPages": {Type: "integer"},
			},
		},
		"SearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":          {Type: "integer"},
				"pageSize":      {Type: "integer"},
				"search":        {Type: "string"},
				"sort":          {Type: "string"},
				"prediction":    {Type: "string", Enum: []any{"Fake", "Real"}},
				"isUrlAnalysis": {Type: "boolean"},
				"ownerId":       {Type: "string"},
				"ownerName":     {Type: "string"},
				"productName":   {Type: "string"},
			},
		},
	},
}

func recordList(description string) *openapi.Response {
	return openapi.ResponseJSONArray(description, "Record")
}
