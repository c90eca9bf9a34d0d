package javasrc

import "sort"

// Unit is the declaration tree of one parsed Java source file.
type Unit struct {
	// Name identifies the unit, normally the file's base name.
	Name string

	// Types holds the top-level type declarations in source order.
	Types []TypeDecl
}

// TypeDecl is a class, interface, enum, or record declaration.
// Methods of anonymous classes and enum constant bodies are listed with the
// type that encloses them.
type TypeDecl struct {
	Name        string
	Annotations []Annotation
	Methods     []MethodDecl
	Nested      []TypeDecl
}

// MethodDecl is a method declaration together with its annotations.
type MethodDecl struct {
	Name        string
	Annotations []Annotation
	StartLine   int // 1-based line of the declaration

	offset uint
}

// Annotation is a named marker attached to a type or method.
// A single unnamed argument is held in Value; name = value arguments in Pairs.
type Annotation struct {
	Name  string
	Value *Argument
	Pairs []Pair
}

// Argument exposes the raw source text of an annotation argument.
type Argument struct {
	Raw string
}

// Pair is a named annotation argument.
type Pair struct {
	Name  string
	Value Argument
}

// Methods returns every method declared in the unit, nested types included,
// ordered by position in the source.
func (u *Unit) Methods() []MethodDecl {
	var methods []MethodDecl
	var collect func(types []TypeDecl)
	collect = func(types []TypeDecl) {
		for _, t := range types {
			methods = append(methods, t.Methods...)
			collect(t.Nested)
		}
	}
	collect(u.Types)

	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].offset < methods[j].offset
	})
	return methods
}
