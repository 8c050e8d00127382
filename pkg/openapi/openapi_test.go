package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/reviewguard/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("ReviewGuard API", "1.2.0")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi = %s", spec.OpenAPI)
	}
	if spec.Info.Title != "ReviewGuard API" || spec.Info.Version != "1.2.0" {
		t.Errorf("info = %+v", spec.Info)
	}
	if len(spec.Security) != 2 {
		t.Errorf("security = %v, want both token schemes", spec.Security)
	}

	for _, name := range []string{openapi.BearerAuth, openapi.AccessToken} {
		if _, ok := spec.Components.SecuritySchemes[name]; !ok {
			t.Errorf("security scheme %s missing", name)
		}
	}
	for _, name := range []string{"BadRequest", "Unauthorized", "Forbidden", "NotFound", "BadGateway", "ServiceUnavailable"} {
		if _, ok := spec.Components.Responses[name]; !ok {
			t.Errorf("response %s missing", name)
		}
	}
}

func TestAddOperation(t *testing.T) {
	spec := openapi.NewSpec("t", "v")

	get := &openapi.Operation{Summary: "get"}
	del := &openapi.Operation{Summary: "delete"}
	spec.AddOperation(http.MethodGet, "/exports/{name...}", get)
	spec.AddOperation(http.MethodDelete, "/exports/{name...}", del)
	spec.AddOperation(http.MethodPatch, "/exports/{name...}", &openapi.Operation{})

	if _, ok := spec.Paths["/exports/{name...}"]; ok {
		t.Error("wildcard suffix not rewritten")
	}

	tests := []struct {
		method string
		want   *openapi.Operation
	}{
		{http.MethodGet, get},
		{http.MethodDelete, del},
		{http.MethodPost, nil},
		{http.MethodPatch, nil},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			op, ok := spec.Operation(tt.method, "/exports/{name}")
			if ok != (tt.want != nil) || op != tt.want {
				t.Errorf("Operation(%s) = %v, %v", tt.method, op, ok)
			}
		})
	}

	if _, ok := spec.Operation(http.MethodGet, "/missing"); ok {
		t.Error("unknown path reported an operation")
	}
}

func TestPathParams(t *testing.T) {
	id := openapi.PathParam("id", "Verdict UUID")
	name := openapi.StringPathParam("name", "Export name")

	if id.In != "path" || !id.Required || id.Schema.Format != "uuid" {
		t.Errorf("PathParam = %+v", id)
	}
	if name.Schema.Format != "" {
		t.Errorf("StringPathParam format = %q, want empty", name.Schema.Format)
	}
}

func TestJSONAndServeSpec(t *testing.T) {
	spec := openapi.NewSpec("t", "v")
	spec.AddServer("/api")
	spec.AddOperation(http.MethodPost, "/verdicts", &openapi.Operation{
		Security:  openapi.OptionalAuth,
		Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("ok", "Verdict")},
	})

	doc, err := spec.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(doc)(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %s", ct)
	}

	var decoded struct {
		Servers []struct{ URL string }
		Paths   map[string]map[string]struct {
			Security  []map[string][]string
			Responses map[string]struct {
				Content map[string]struct {
					Schema struct {
						Ref string `json:"$ref"`
					}
				}
			}
		}
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(decoded.Servers) != 1 || decoded.Servers[0].URL != "/api" {
		t.Errorf("servers = %+v", decoded.Servers)
	}

	post := decoded.Paths["/verdicts"]["post"]
	if len(post.Security) != 3 || len(post.Security[0]) != 0 {
		t.Errorf("security = %v, want anonymous first", post.Security)
	}
	if ref := post.Responses["200"].Content["application/json"].Schema.Ref; ref != "#/components/schemas/Verdict" {
		t.Errorf("response ref = %s", ref)
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Staging API")

	var cfg openapi.Config
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Staging API" {
		t.Errorf("title = %s", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("description default not applied")
	}

	cfg.Merge(&openapi.Config{Description: "custom"})
	if cfg.Title != "Staging API" || cfg.Description != "custom" {
		t.Errorf("merged = %+v", cfg)
	}
}
