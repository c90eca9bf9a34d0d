package extract

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/mvp-joe/apidoc/internal/javasrc"
)

// httpVerbs are the bare JAX-RS verb annotations.
var httpVerbs = []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "TRACE"}

// mappingVerbs are the Spring <Verb>Mapping shortcut annotations.
var mappingVerbs = []string{"Get", "Post", "Put", "Delete", "Patch"}

// verbToken matches a verb identifier, optionally qualified (RequestMethod.GET).
var verbToken = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*`)

// writer stores one raw annotation argument into a record.
type writer func(r *Record, raw string)

// rule describes how one annotation maps onto record fields.
type rule struct {
	// matched runs once whenever the annotation is present.
	matched func(r *Record)
	// unnamed handles a single unnamed argument: @A("x").
	unnamed writer
	// named handles name = value arguments. Unknown names are ignored.
	named map[string]writer
}

func (ru rule) apply(r *Record, a javasrc.Annotation) {
	if ru.matched != nil {
		ru.matched(r)
	}
	if a.Value != nil && ru.unnamed != nil {
		ru.unnamed(r, a.Value.Raw)
	}
	for _, pair := range a.Pairs {
		if w, ok := ru.named[pair.Name]; ok {
			w(r, pair.Value.Raw)
		}
	}
}

// Matcher applies the class-level and method-level annotation rule tables.
// Supporting another framework means adding entries to the tables.
type Matcher struct {
	class  map[string]rule
	method map[string]rule
}

// NewMatcher builds a matcher with the Spring, JAX-RS, OpenAPI and Swagger rules.
func NewMatcher() *Matcher {
	return &Matcher{
		class:  classRules(),
		method: methodRules(),
	}
}

// ApplyClass runs the class-level pass. It only writes the class path.
func (m *Matcher) ApplyClass(r *Record, annotations []javasrc.Annotation) {
	for _, a := range annotations {
		if ru, ok := lookup(m.class, a.Name); ok {
			ru.apply(r, a)
		}
	}
}

// ApplyMethod runs the method-level pass in annotation order.
func (m *Matcher) ApplyMethod(r *Record, annotations []javasrc.Annotation) {
	for _, a := range annotations {
		if ru, ok := lookup(m.method, a.Name); ok {
			ru.apply(r, a)
		}
	}
}

// lookup resolves an annotation by its name as written, then by simple name,
// so @javax.ws.rs.Path and @Path share a rule.
func lookup(table map[string]rule, name string) (rule, bool) {
	if ru, ok := table[name]; ok {
		return ru, true
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ru, ok := table[name[i+1:]]
		return ru, ok
	}
	return rule{}, false
}

func classRules() map[string]rule {
	return map[string]rule{
		// Swagger 1.5 @Api: value is often prose, so only take space-free values.
		"Api": {
			unnamed: setClassPathIfCompact,
			named: map[string]writer{
				"basePath": setClassPathIfCompact,
				"value":    setClassPathIfCompact,
			},
		},
		"RequestMapping": {
			unnamed: setClassPath,
			named: map[string]writer{
				"path":  setClassPath,
				"value": setClassPath,
			},
		},
		"Path": {
			unnamed: setClassPath,
			named: map[string]writer{
				"value": setClassPath,
			},
		},
	}
}

func methodRules() map[string]rule {
	rules := make(map[string]rule, len(httpVerbs)+len(mappingVerbs)+4)

	for _, verb := range httpVerbs {
		rules[verb] = rule{matched: setVerb(verb)}
	}

	for _, verb := range mappingVerbs {
		rules[verb+"Mapping"] = rule{
			matched: setVerb(strings.ToUpper(verb)),
			unnamed: setPath,
			named: map[string]writer{
				"path":  setPath,
				"value": setPath,
			},
		}
	}

	rules["RequestMapping"] = rule{
		unnamed: setPath,
		named: map[string]writer{
			"method": setVerbSet,
			"path":   setPath,
			"value":  setPath,
		},
	}

	rules["Path"] = rule{
		unnamed: setPath,
		named: map[string]writer{
			"value": setPath,
		},
	}

	// OpenAPI 3 @Operation
	rules["Operation"] = rule{
		unnamed: mergeDocumentation,
		named: map[string]writer{
			"method":      setMethod,
			"summary":     mergeDocumentation,
			"description": mergeNotes,
		},
	}

	// Swagger 1.5 @ApiOperation
	rules["ApiOperation"] = rule{
		unnamed: mergeDocumentation,
		named: map[string]writer{
			"httpMethod": setMethod,
			"value":      mergeDocumentation,
			"notes":      mergeNotes,
		},
	}

	return rules
}

func setClassPath(r *Record, raw string) {
	r.SetClassPath(Normalize(raw))
}

func setClassPathIfCompact(r *Record, raw string) {
	if strings.IndexFunc(raw, unicode.IsSpace) < 0 {
		r.SetClassPath(Normalize(raw))
	}
}

func setMethod(r *Record, raw string) {
	r.SetMethod(Normalize(raw))
}

func setPath(r *Record, raw string) {
	r.SetPath(Normalize(raw))
}

func mergeDocumentation(r *Record, raw string) {
	r.MergeDocumentation(Normalize(raw))
}

func mergeNotes(r *Record, raw string) {
	r.MergeNotes(Normalize(raw))
}

func setVerb(verb string) func(r *Record) {
	return func(r *Record) {
		r.SetMethod(Normalize(verb))
	}
}

// setVerbSet handles method = RequestMethod.GET and
// method = {RequestMethod.PUT, RequestMethod.GET}.
func setVerbSet(r *Record, raw string) {
	r.SetMethod(Normalize(joinVerbs(raw)))
}

// joinVerbs extracts verb identifiers, drops qualifiers, and joins them
// sorted with ", ".
func joinVerbs(raw string) string {
	tokens := verbToken.FindAllString(raw, -1)
	verbs := make([]string, 0, len(tokens))
	for _, token := range tokens {
		verbs = append(verbs, token[strings.LastIndexByte(token, '.')+1:])
	}
	slices.Sort(verbs)
	return strings.Join(slices.Compact(verbs), ", ")
}
