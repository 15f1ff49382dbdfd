package apidoc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/m1z23r/drift/pkg/drift"
	"gopkg.in/yaml.v3"
)

const (
	AccessPublic    = "public"
	AccessProtected = "protected"
	AccessAdmin     = "admin"
)

var pathParam = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// Route describes one procedure of the API. Request and Response are sample
// values whose types are reflected into JSON schemas.
//
// Errors are documented as drift.HTTPError unless FailureBody is set, in which
// case it describes the body of the handler's own 400 and 500 answers.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tag         string
	Access      string
	Status      int
	Request     any
	Response    any
	FailureBody any
	Multipart   bool
}

// Build assembles an OpenAPI 3 document describing routes.
func Build(title, version string, routes []Route) (*openapi3.T, error) {
	paths := openapi3.NewPaths()

	for _, r := range routes {
		op, err := operation(r)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
		}

		key := pathParam.ReplaceAllString(r.Path, "{$1}")
		item := paths.Value(key)
		if item == nil {
			item = &openapi3.PathItem{}
			paths.Set(key, item)
		}
		item.SetOperation(r.Method, op)
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: paths,
	}, nil
}

func operation(r Route) (*openapi3.Operation, error) {
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	ok := openapi3.NewResponse().WithDescription(http.StatusText(status))
	if r.Response != nil {
		ref, err := openapi3gen.NewSchemaRefForValue(r.Response, nil)
		if err != nil {
			return nil, err
		}
		ok = ok.WithJSONSchemaRef(ref)
	}

	responses := openapi3.NewResponses(openapi3.WithStatus(status, &openapi3.ResponseRef{Value: ok}))
	for _, code := range errorStatuses(r) {
		resp, err := errorResponse(r, code)
		if err != nil {
			return nil, err
		}
		responses.Set(fmt.Sprint(code), &openapi3.ResponseRef{Value: resp})
	}

	op := &openapi3.Operation{
		OperationID: r.OperationID,
		Summary:     r.Summary,
		Description: "Access: " + r.Access,
		Responses:   responses,
	}
	if r.Tag != "" {
		op.Tags = []string{r.Tag}
	}

	for _, m := range pathParam.FindAllStringSubmatch(r.Path, -1) {
		param := openapi3.NewPathParameter(m[1]).WithSchema(openapi3.NewInt64Schema())
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
	}

	switch {
	case r.Multipart:
		schema := openapi3.NewObjectSchema().
			WithProperty("file", openapi3.NewStringSchema().WithFormat("binary"))
		schema.Required = []string{"file"}
		op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithFormDataSchema(schema)}
	case r.Request != nil:
		ref, err := openapi3gen.NewSchemaRefForValue(r.Request, nil)
		if err != nil {
			return nil, err
		}
		op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref)}
	}

	return op, nil
}

func errorStatuses(r Route) []int {
	var codes []int
	if r.Request != nil || r.Multipart || strings.Contains(r.Path, ":") {
		codes = append(codes, http.StatusBadRequest)
	}
	switch r.Access {
	case AccessProtected:
		codes = append(codes, http.StatusUnauthorized)
	case AccessAdmin:
		codes = append(codes, http.StatusUnauthorized, http.StatusForbidden)
	}
	if strings.Contains(r.Path, ":") {
		codes = append(codes, http.StatusNotFound)
	}
	return append(codes, http.StatusInternalServerError)
}

func errorResponse(r Route, code int) (*openapi3.Response, error) {
	var body any = drift.HTTPError{}
	if r.FailureBody != nil && (code == http.StatusBadRequest || code == http.StatusInternalServerError) {
		body = r.FailureBody
	}

	ref, err := openapi3gen.NewSchemaRefForValue(body, nil)
	if err != nil {
		return nil, err
	}
	ref.Value.Required = requiredFields(body)
	return openapi3.NewResponse().WithDescription(http.StatusText(code)).WithJSONSchemaRef(ref), nil
}

// requiredFields lists the JSON names of v's fields that are always encoded.
func requiredFields(v any) []string {
	t := reflect.TypeOf(v)
	var names []string
	for i := 0; i < t.NumField(); i++ {
		name, opts, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" || strings.Contains(opts, "omitempty") {
			continue
		}
		names = append(names, name)
	}
	return names
}

// YAML renders doc as YAML through its JSON form so the output keeps the
// document's JSON field names.
func YAML(doc *openapi3.T) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}
