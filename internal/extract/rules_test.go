package extract

import (
	"testing"

	"github.com/mvp-joe/apidoc/internal/javasrc"
	"github.com/stretchr/testify/assert"
)

// Test Plan for Matcher:
// - @Api sets the class path from an unnamed value or basePath/value, only when free of whitespace
// - @RequestMapping and @Path set the class path unconditionally
// - The class pass ignores method-level annotations
// - Bare verb annotations set the method
// - <Verb>Mapping sets the upper-cased verb and the path (unnamed, path, value)
// - @RequestMapping method sets become sorted, comma-joined verbs
// - @Path sets only the path
// - @Operation maps method/summary/description; @ApiOperation maps httpMethod/value/notes
// - Unknown annotations and unknown named arguments are ignored
// - Qualified annotation names resolve to the simple-name rule

func unnamed(name, raw string) javasrc.Annotation {
	return javasrc.Annotation{Name: name, Value: &javasrc.Argument{Raw: raw}}
}

func named(name string, kv ...string) javasrc.Annotation {
	a := javasrc.Annotation{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		a.Pairs = append(a.Pairs, javasrc.Pair{Name: kv[i], Value: javasrc.Argument{Raw: kv[i+1]}})
	}
	return a
}

func marker(name string) javasrc.Annotation {
	return javasrc.Annotation{Name: name}
}

func classPathOf(annotations ...javasrc.Annotation) string {
	r := NewRecord("repo#file", DefaultNaming())
	NewMatcher().ApplyClass(r, annotations)
	return r.ClassPath()
}

func methodRecord(annotations ...javasrc.Annotation) *Record {
	r := NewRecord("repo#file", DefaultNaming())
	NewMatcher().ApplyMethod(r, annotations)
	return r
}

func TestMatcher_ClassPass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		annotations []javasrc.Annotation
		want        string
	}{
		{name: "api unnamed", annotations: []javasrc.Annotation{unnamed("Api", `"pets"`)}, want: "pets"},
		{name: "api basePath", annotations: []javasrc.Annotation{named("Api", "basePath", `"/v1"`)}, want: "/v1"},
		{name: "api value", annotations: []javasrc.Annotation{named("Api", "value", `"orders"`)}, want: "orders"},
		{name: "api prose ignored", annotations: []javasrc.Annotation{named("Api", "value", `"orders api"`)}, want: ""},
		{name: "api unnamed prose ignored", annotations: []javasrc.Annotation{unnamed("Api", `"All about pets"`)}, want: ""},
		{name: "api tags ignored", annotations: []javasrc.Annotation{named("Api", "tags", `"pets"`)}, want: ""},
		{name: "request mapping unnamed", annotations: []javasrc.Annotation{unnamed("RequestMapping", `"/pets"`)}, want: "/pets"},
		{name: "request mapping path", annotations: []javasrc.Annotation{named("RequestMapping", "path", `"/a b"`)}, want: "/a b"},
		{name: "path value", annotations: []javasrc.Annotation{named("Path", "value", `"users"`)}, want: "users"},
		{name: "qualified path", annotations: []javasrc.Annotation{unnamed("javax.ws.rs.Path", `"users"`)}, want: "users"},
		{name: "last write wins", annotations: []javasrc.Annotation{unnamed("Api", `"a"`), unnamed("RequestMapping", `"b"`)}, want: "b"},
		{name: "method annotations ignored", annotations: []javasrc.Annotation{unnamed("GetMapping", `"/x"`), marker("GET")}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classPathOf(tt.annotations...))
		})
	}
}

func TestMatcher_BareVerbs(t *testing.T) {
	t.Parallel()

	for _, verb := range httpVerbs {
		r := methodRecord(marker(verb))
		assert.Equal(t, verb, r.Method())
		assert.Equal(t, "", r.Path())
	}
}

func TestMatcher_MappingVerbs(t *testing.T) {
	t.Parallel()

	r := methodRecord(unnamed("GetMapping", `"/{id}"`))
	assert.Equal(t, "GET", r.Method())
	assert.Equal(t, "/{id}", r.Path())

	r = methodRecord(named("PostMapping", "path", `"/orders"`, "consumes", `"application/json"`))
	assert.Equal(t, "POST", r.Method())
	assert.Equal(t, "/orders", r.Path())

	r = methodRecord(named("DeleteMapping", "value", `"/x"`))
	assert.Equal(t, "DELETE", r.Method())
	assert.Equal(t, "/x", r.Path())

	r = methodRecord(marker("PatchMapping"))
	assert.Equal(t, "PATCH", r.Method())
	assert.Equal(t, "", r.Path())
}

func TestMatcher_RequestMappingVerbSet(t *testing.T) {
	t.Parallel()

	r := methodRecord(named("RequestMapping",
		"value", `"/{id}"`,
		"method", "{RequestMethod.PUT, RequestMethod.GET}",
	))
	assert.Equal(t, "GET, PUT", r.Method())
	assert.Equal(t, "/{id}", r.Path())

	r = methodRecord(named("RequestMapping", "method", "RequestMethod.POST"))
	assert.Equal(t, "POST", r.Method())

	r = methodRecord(named("RequestMapping", "method", "{PUT, GET, PUT}"))
	assert.Equal(t, "GET, PUT", r.Method())

	r = methodRecord(unnamed("RequestMapping", `"/plain"`))
	assert.Equal(t, "", r.Method())
	assert.Equal(t, "/plain", r.Path())
}

func TestMatcher_PathOnly(t *testing.T) {
	t.Parallel()

	r := methodRecord(unnamed("Path", `"/{id}"`))
	assert.Equal(t, "/{id}", r.Path())
	assert.Equal(t, "", r.Method())

	r = methodRecord(marker("GET"), unnamed("javax.ws.rs.Path", `"/q"`))
	assert.Equal(t, "GET", r.Method())
	assert.Equal(t, "/q", r.Path())
}

func TestMatcher_Operation(t *testing.T) {
	t.Parallel()

	r := methodRecord(named("Operation",
		"method", `"GET"`,
		"summary", `"Get user"`,
		"description", `"Fetch a user " + "by id"`,
		"tags", `{"users"}`,
	))
	assert.Equal(t, "GET", r.Method())
	assert.Equal(t, "Get user", r.Documentation())
	assert.Equal(t, "Fetch a user by id", r.Notes())

	r = methodRecord(unnamed("Operation", `"Short"`))
	assert.Equal(t, "Short", r.Documentation())
}

func TestMatcher_ApiOperation(t *testing.T) {
	t.Parallel()

	r := methodRecord(named("ApiOperation",
		"value", `"Find pet"`,
		"notes", `"Returns a pet"`,
		"httpMethod", `"GET"`,
		"response", "Pet.class",
	))
	assert.Equal(t, "GET", r.Method())
	assert.Equal(t, "Find pet", r.Documentation())
	assert.Equal(t, "Returns a pet", r.Notes())

	r = methodRecord(unnamed("io.swagger.annotations.ApiOperation", `"Find pet"`))
	assert.Equal(t, "Find pet", r.Documentation())
}

func TestMatcher_DocumentationAcrossAnnotations(t *testing.T) {
	t.Parallel()

	r := methodRecord(
		unnamed("ApiOperation", `"desc 1"`),
		named("Operation", "summary", `"desc 2"`),
	)
	assert.Equal(t, "desc 1 + desc 2", r.Documentation())

	r = methodRecord(
		unnamed("ApiOperation", `"desc 1"`),
		named("Operation", "summary", `"desc 1"`),
	)
	assert.Equal(t, "desc 1", r.Documentation())
}

func TestMatcher_UnknownIgnored(t *testing.T) {
	t.Parallel()

	r := methodRecord(
		marker("Override"),
		unnamed("ResponseStatus", "HttpStatus.CREATED"),
		named("Deprecated", "since", `"1.0"`),
	)
	assert.True(t, r.IsEmpty())
}

func TestJoinVerbs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET, PUT", joinVerbs("{RequestMethod.PUT, RequestMethod.GET}"))
	assert.Equal(t, "DELETE", joinVerbs("org.springframework.web.bind.annotation.RequestMethod.DELETE"))
	assert.Equal(t, "", joinVerbs("{}"))
}
