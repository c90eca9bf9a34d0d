package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds eligible source files under an input directory.
type FileDiscovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	var err error
	if fd.includePatterns, err = compilePatterns(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	return fd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// DiscoverFiles walks the directory tree and returns matching files in
// lexical order. This order is the output order of a run.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if fd.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.Matches(relPath) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// Matches reports whether a slash-separated path relative to the root is an
// eligible file.
func (fd *FileDiscovery) Matches(relPath string) bool {
	return !fd.shouldIgnore(relPath) && fd.matchesAnyPattern(relPath, fd.includePatterns)
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// Also check if this is a directory that would match with /** suffix
	// For example, "target" should match pattern "target/**"
	return fd.matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: if path is in root (no slash), also try matching against
	// patterns with **/ prefix removed. This makes "**/*.java" match both "A.java"
	// and "src/B.java" as users would expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
