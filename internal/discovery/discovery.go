// Package discovery finds the source files a batch run or watcher should
// handle, using include and ignore glob patterns relative to a root.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/code-skeleton/internal/grammar"
)

// stateDir is always skipped.
const stateDir = ".skeleton"

// File is a discovered source file.
type File struct {
	Path     string
	RelPath  string
	Language grammar.Language
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	// root matches files in the root directory for "**/"-prefixed patterns.
	root glob.Glob
}

// Discovery matches files under a root directory.
type Discovery struct {
	rootDir string
	include []compiledPattern
	ignore  []compiledPattern
}

// New compiles include and ignore patterns for rootDir.
func New(rootDir string, include, ignore []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	var err error
	if d.include, err = compileAll(include); err != nil {
		return nil, err
	}
	if d.ignore, err = compileAll(ignore); err != nil {
		return nil, err
	}
	return d, nil
}

func compileAll(patterns []string) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		cp := compiledPattern{pattern: pattern, glob: g}

		// "**/*.py" should match "setup.py" as well as "pkg/mod.py".
		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			if rg, err := glob.Compile(simplified, '/'); err == nil {
				cp.root = rg
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

// Root returns the directory being searched.
func (d *Discovery) Root() string {
	return d.rootDir
}

// Discover walks the directory tree and returns matching files of a supported
// language, in lexical order.
func (d *Discovery) Discover() ([]File, error) {
	files := []File{}

	err := filepath.WalkDir(d.rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if entry.IsDir() {
			if relPath != "." && d.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if file, ok := d.match(path, relPath); ok {
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", d.rootDir, err)
	}
	return files, nil
}

// Match reports whether an absolute or root-relative file path would be
// discovered.
func (d *Discovery) Match(path string) (File, bool) {
	relPath := path
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(d.rootDir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return File{}, false
		}
		relPath = rel
	} else {
		path = filepath.Join(d.rootDir, path)
	}
	return d.match(path, filepath.ToSlash(relPath))
}

// SkipDir reports whether an absolute directory under the root is ignored.
// The root itself and directories outside it are never skipped.
func (d *Discovery) SkipDir(path string) bool {
	rel, err := filepath.Rel(d.rootDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	return d.shouldIgnore(filepath.ToSlash(rel))
}

func (d *Discovery) match(path, relPath string) (File, bool) {
	if d.shouldIgnore(relPath) || !matchesAnyPattern(relPath, d.include) {
		return File{}, false
	}
	lang := grammar.DetectLanguage(relPath)
	if lang == "" {
		return File{}, false
	}
	return File{Path: path, RelPath: relPath, Language: lang}, true
}

// shouldIgnore checks if a path, or a directory containing it, is ignored.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if relPath == stateDir || strings.HasPrefix(relPath, stateDir+"/") {
		return true
	}

	// A directory matches "node_modules/**" through its /** form.
	return matchesAnyPattern(relPath, d.ignore) || matchesAnyPattern(relPath+"/**", d.ignore)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(relPath string, patterns []compiledPattern) bool {
	inRoot := !strings.Contains(relPath, "/")
	for _, cp := range patterns {
		if cp.glob.Match(relPath) {
			return true
		}
		if inRoot && cp.root != nil && cp.root.Match(relPath) {
			return true
		}
	}
	return false
}
