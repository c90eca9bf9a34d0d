package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Record:
// - Field.Merge sets, ignores equal values, and appends different values with " + "
// - Field.Set is last-write-wins
// - Documentation and notes accumulate through Merge
// - Method, path and class path are last-write-wins
// - Blank literals never change a field
// - FullPath returns the method path alone without a class path, blank class paths included
// - FullPath collapses separator runs and trims outer separators with a class path
// - IsEmpty only holds when method, full path, documentation and notes are all empty
// - Derive copies identity and class path but nothing else, and is independent of the base
// - Naming.Split derives repo and file and substitutes the placeholder

func lit(s string) Literal {
	return Normalize(s)
}

func TestField_Merge(t *testing.T) {
	t.Parallel()

	var f Field
	assert.False(t, f.IsSet())

	f = f.Merge("desc 1")
	assert.True(t, f.IsSet())
	assert.Equal(t, "desc 1", f.Value())

	f = f.Merge("desc 1")
	assert.Equal(t, "desc 1", f.Value())

	f = f.Merge("desc 2")
	assert.Equal(t, "desc 1 + desc 2", f.Value())
	assert.Equal(t, appended, f.state)
}

func TestField_Set(t *testing.T) {
	t.Parallel()

	f := Field{}.Set("GET").Set("POST")
	assert.Equal(t, "POST", f.Value())
	assert.Equal(t, set, f.state)
}

func TestRecord_DocumentationAccumulates(t *testing.T) {
	t.Parallel()

	r := NewRecord("repo#file", DefaultNaming())
	r.MergeDocumentation(lit(`"desc 1"`))
	r.MergeDocumentation(lit(`"desc 2"`))
	assert.Equal(t, "desc 1 + desc 2", r.Documentation())

	r2 := NewRecord("repo#file", DefaultNaming())
	r2.MergeDocumentation(lit(`"desc 1"`))
	r2.MergeDocumentation(lit(`"desc 1"`))
	assert.Equal(t, "desc 1", r2.Documentation())

	r2.MergeNotes(lit(`"n"`))
	r2.MergeNotes(lit(`"m"`))
	assert.Equal(t, "n + m", r2.Notes())
}

func TestRecord_LastWriteWins(t *testing.T) {
	t.Parallel()

	r := NewRecord("repo#file", DefaultNaming())
	r.SetMethod(lit("GET"))
	r.SetMethod(lit("POST"))
	r.SetPath(lit(`"/a"`))
	r.SetPath(lit(`"/b"`))
	r.SetClassPath(lit(`"x"`))
	r.SetClassPath(lit(`"y"`))

	assert.Equal(t, "POST", r.Method())
	assert.Equal(t, "/b", r.Path())
	assert.Equal(t, "y", r.ClassPath())
}

func TestRecord_BlankIgnored(t *testing.T) {
	t.Parallel()

	r := NewRecord("repo#file", DefaultNaming())
	r.SetMethod(lit("GET"))
	r.SetMethod(lit(`"  "`))
	r.SetClassPath(lit(`""`))
	r.MergeDocumentation(lit(`" "`))

	assert.Equal(t, "GET", r.Method())
	assert.Equal(t, "", r.ClassPath())
	assert.False(t, r.documentation.IsSet())
}

func TestRecord_FullPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		classPath string
		path      string
		want      string
	}{
		{name: "no class path", path: `"/{id}"`, want: "/{id}"},
		{name: "redundant separators", classPath: `"/pets/"`, path: `"/{id}"`, want: "pets/{id}"},
		{name: "plain join", classPath: `"users"`, path: `"{id}"`, want: "users/{id}"},
		{name: "class path only", classPath: `"/users/"`, want: "users"},
		{name: "nothing", want: ""},
		{name: "blank class path leaves path as declared", classPath: `"  "`, path: `"//{id}/"`, want: "//{id}/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewRecord("repo#file", DefaultNaming())
			if tt.classPath != "" {
				r.SetClassPath(lit(tt.classPath))
			}
			if tt.path != "" {
				r.SetPath(lit(tt.path))
			}
			assert.Equal(t, tt.want, r.FullPath())
		})
	}
}

func TestRecord_IsEmpty(t *testing.T) {
	t.Parallel()

	r := NewRecord("repo#file", DefaultNaming())
	assert.True(t, r.IsEmpty())

	withNotes := r.Derive()
	withNotes.MergeNotes(lit(`"only notes"`))
	assert.False(t, withNotes.IsEmpty())

	withClassPath := NewRecord("repo#file", DefaultNaming())
	withClassPath.SetClassPath(lit(`"users"`))
	assert.False(t, withClassPath.Derive().IsEmpty())

	rootOnly := NewRecord("repo#file", DefaultNaming())
	rootOnly.SetClassPath(lit(`"/"`))
	assert.True(t, rootOnly.Derive().IsEmpty())
}

func TestRecord_DeriveIsIndependent(t *testing.T) {
	t.Parallel()

	base := NewRecord("repo#file", DefaultNaming())
	base.SetClassPath(lit(`"users"`))

	first := base.Derive()
	first.SetPath(lit(`"/a"`))
	first.SetMethod(lit("GET"))
	first.SetClassPath(lit(`"other"`))

	second := base.Derive()

	assert.Equal(t, "users", base.ClassPath())
	assert.Equal(t, "", base.Path())
	assert.Equal(t, "users", second.ClassPath())
	assert.Equal(t, "", second.Method())
	assert.Equal(t, "repo", second.Repo)
	assert.Equal(t, "file", second.File)
}

func TestNaming_Split(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		naming     Naming
		identifier string
		repo       string
		file       string
	}{
		{name: "simple", naming: DefaultNaming(), identifier: "repo#file", repo: "repo", file: "file"},
		{name: "placeholder", naming: DefaultNaming(), identifier: "org$repo#src$main$A.java", repo: "org/repo", file: "src/main/A.java"},
		{name: "no separator", naming: DefaultNaming(), identifier: "A.java", repo: "", file: "A.java"},
		{name: "custom", naming: Naming{Separator: "__", Placeholder: "~"}, identifier: "r__a~b.java", repo: "r", file: "a/b.java"},
		{name: "empty separator", naming: Naming{}, identifier: "x#y", repo: "", file: "x#y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, file := tt.naming.Split(tt.identifier)
			assert.Equal(t, tt.repo, repo)
			assert.Equal(t, tt.file, file)
		})
	}
}
