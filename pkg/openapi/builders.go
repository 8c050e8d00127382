package openapi

// Security scheme names registered by NewComponents.
const (
	BearerAuth  = "bearerAuth"
	AccessToken = "accessToken"
)

// RequireAuth accepts either token presentation.
var RequireAuth = []SecurityRequirement{
	{BearerAuth: {}},
	{AccessToken: {}},
}

// OptionalAuth additionally permits anonymous calls.
var OptionalAuth = append([]SecurityRequirement{{}}, RequireAuth...)

func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// RequestBodyJSON is an application/json body of the named schema.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{
		Required: required,
		Content:  jsonContent(SchemaRef(schemaName)),
	}
}

// ResponseJSON is an application/json response of the named schema.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content:     jsonContent(SchemaRef(schemaName)),
	}
}

// ResponseJSONArray is an application/json response listing the named schema.
func ResponseJSONArray(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content:     jsonContent(&Schema{Type: "array", Items: SchemaRef(schemaName)}),
	}
}

// PathParam is a required UUID path segment.
func PathParam(name, description string) *Parameter {
	p := StringPathParam(name, description)
	p.Schema.Format = "uuid"
	return p
}

// StringPathParam is a required free-form path segment.
func StringPathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string"},
	}
}

func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}

func jsonContent(s *Schema) map[string]*MediaType {
	return map[string]*MediaType{"application/json": {Schema: s}}
}
