package openapi

import "maps"

// NewComponents returns the shared page request schema, the error
// responses every module references, and the token security schemes.
func NewComponents() *Components {
	return &Components{
		SecuritySchemes: map[string]*SecurityScheme{
			BearerAuth: {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
			},
			AccessToken: {
				Type:        "apiKey",
				In:          "header",
				Name:        "X-Access-Token",
				Description: "Same token as bearerAuth, for clients that cannot set Authorization",
			},
		},
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":     {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"pageSize": {Type: "integer", Description: "Results per page", Example: 20},
					"search":   {Type: "string", Description: "Search query"},
					"sort":     {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: -CreatedAt,Confidence"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":         errorResponse("Invalid request"),
			"Unauthorized":       errorResponse("Missing or invalid access token"),
			"Forbidden":          errorResponse("Caller lacks the required role or ownership"),
			"NotFound":           errorResponse("Resource not found"),
			"BadGateway":         errorResponse("Classifier returned unusable output"),
			"ServiceUnavailable": errorResponse("Classifier unavailable or timed out"),
		},
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: jsonContent(&Schema{
			Type:     "object",
			Required: []string{"error"},
			Properties: map[string]*Schema{
				"error": {Type: "string"},
			},
		}),
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
