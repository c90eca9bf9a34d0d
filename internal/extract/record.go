package extract

import (
	"regexp"
	"strings"
)

// separatorRun matches consecutive path separators.
var separatorRun = regexp.MustCompile(`/{2,}`)

// fieldState tracks how a Field got its value.
type fieldState int

const (
	unset fieldState = iota
	set
	appended
)

// Field is a single extracted value. Fields are immutable; Set and Merge
// return the updated value.
type Field struct {
	value string
	state fieldState
}

// Value returns the field's text, or "" when unset.
func (f Field) Value() string {
	return f.value
}

// IsSet reports whether the field has been written.
func (f Field) IsSet() bool {
	return f.state != unset
}

// Set overwrites the field (last write wins).
func (f Field) Set(v string) Field {
	return Field{value: v, state: set}
}

// Merge sets an unset field, ignores a value equal to the current one, and
// otherwise appends v after " + ".
func (f Field) Merge(v string) Field {
	switch {
	case f.state == unset:
		return Field{value: v, state: set}
	case f.value == v:
		return f
	default:
		return Field{value: f.value + " + " + v, state: appended}
	}
}

// Naming describes how a source unit identifier encodes repo and file.
type Naming struct {
	// Separator splits the identifier into repo and file segments.
	Separator string
	// Placeholder stands for a path separator inside either segment.
	Placeholder string
}

// DefaultNaming returns the <repo>#<file> convention with '$' for '/'.
func DefaultNaming() Naming {
	return Naming{Separator: "#", Placeholder: "$"}
}

// Split derives repo and file from a unit identifier. An identifier without
// the separator has an empty repo.
func (n Naming) Split(identifier string) (repo, file string) {
	repo, file, found := strings.Cut(identifier, n.Separator)
	if n.Separator == "" || !found {
		repo, file = "", identifier
	}
	if n.Placeholder != "" {
		repo = strings.ReplaceAll(repo, n.Placeholder, "/")
		file = strings.ReplaceAll(file, n.Placeholder, "/")
	}
	return repo, file
}

// Record holds the fields extracted for one method, or the class-level base
// of a source unit. Blank literals never change a field.
type Record struct {
	Repo string
	File string
	Line int // declaration line of the method, 0 for a base record

	classPath     Field
	method        Field
	path          Field
	documentation Field
	notes         Field
}

// NewRecord creates an empty base record for a source unit.
func NewRecord(identifier string, naming Naming) *Record {
	repo, file := naming.Split(identifier)
	return &Record{Repo: repo, File: file}
}

// Derive returns a new record carrying only the identity and class path of r.
func (r *Record) Derive() *Record {
	return &Record{
		Repo:      r.Repo,
		File:      r.File,
		classPath: r.classPath,
	}
}

// SetClassPath replaces the class-level path prefix.
func (r *Record) SetClassPath(l Literal) {
	if !l.Blank {
		r.classPath = r.classPath.Set(l.Value)
	}
}

// SetMethod replaces the HTTP verb.
func (r *Record) SetMethod(l Literal) {
	if !l.Blank {
		r.method = r.method.Set(l.Value)
	}
}

// SetPath replaces the method-level path.
func (r *Record) SetPath(l Literal) {
	if !l.Blank {
		r.path = r.path.Set(l.Value)
	}
}

// MergeDocumentation adds l to the summary text. See Field.Merge.
func (r *Record) MergeDocumentation(l Literal) {
	if !l.Blank {
		r.documentation = r.documentation.Merge(l.Value)
	}
}

// MergeNotes adds l to the long description. See Field.Merge.
func (r *Record) MergeNotes(l Literal) {
	if !l.Blank {
		r.notes = r.notes.Merge(l.Value)
	}
}

// ClassPath returns the class-level path prefix as declared.
func (r *Record) ClassPath() string { return r.classPath.Value() }

// Method returns the HTTP verb. A verb set is comma separated.
func (r *Record) Method() string { return r.method.Value() }

// Path returns the method-level path as declared.
func (r *Record) Path() string { return r.path.Value() }

// Documentation returns the summary text with quotes doubled.
func (r *Record) Documentation() string { return r.documentation.Value() }

// Notes returns the long description with quotes doubled.
func (r *Record) Notes() string { return r.notes.Value() }

// FullPath composes the class path and the method path. Without a class path
// the method path is returned as declared; otherwise separator runs are
// collapsed and leading and trailing separators removed.
func (r *Record) FullPath() string {
	if !r.classPath.IsSet() {
		return r.path.Value()
	}
	joined := separatorRun.ReplaceAllString(r.classPath.Value()+"/"+r.path.Value(), "/")
	return strings.Trim(joined, "/")
}

// IsEmpty reports whether the record carries nothing worth emitting.
func (r *Record) IsEmpty() bool {
	return r.Method() == "" &&
		r.FullPath() == "" &&
		r.Documentation() == "" &&
		r.Notes() == ""
}
