// Package script loads Starlark action scripts. Every top-level function in
// a .star file becomes an action named <file>.<func>.
package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Loader scans a directory for .star files and loads them as Starlark modules.
type Loader struct {
	dir string
}

// NewLoader creates a new script loader for the specified directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Module is a loaded .star file.
type Module struct {
	// Namespace is derived from filename (e.g., "songs" from "songs.star")
	Namespace string

	// Path is the path to the .star file
	Path string

	// Functions holds the exported functions (names not starting with _)
	Functions map[string]*starlark.Function
}

// FunctionNames returns the exported function names, sorted.
func (m *Module) FunctionNames() []string {
	names := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load scans the scripts directory and loads all .star files. A missing
// directory is not an error and yields no modules. Every broken file is
// reported, joined into one error.
func (l *Loader) Load() ([]*Module, error) {
	if l.dir == "" {
		return nil, nil
	}
	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access scripts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scripts path is not a directory: %s", l.dir)
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.star"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scripts directory: %w", err)
	}

	var (
		modules []*Module
		errs    []error
	)
	for _, file := range files {
		module, err := LoadFile(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		modules = append(modules, module)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return modules, nil
}

// fileOptions lets action scripts loop with while and use sets.
var fileOptions = &syntax.FileOptions{While: true, Set: true}

// LoadFile executes a single .star file and collects its functions. The
// module's globals are frozen so its functions may run concurrently.
func LoadFile(path string) (*Module, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the configured scripts directory
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}

	namespace := strings.TrimSuffix(filepath.Base(path), ".star")
	if !isIdentifier(namespace) || strings.HasPrefix(namespace, "_") {
		return nil, &LoadError{
			File:    path,
			Message: fmt.Sprintf("file name %q must be an identifier not starting with _; it prefixes the action names", namespace),
		}
	}

	thread := &starlark.Thread{Name: "load:" + namespace, Print: func(*starlark.Thread, string) {}}
	globals, err := starlark.ExecFileOptions(fileOptions, thread, path, content, Predeclared())
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, &LoadError{File: path, Message: evalErr.Backtrace()}
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	globals.Freeze()

	functions := make(map[string]*starlark.Function)
	for name, value := range globals {
		if strings.HasPrefix(name, "_") {
			continue
		}
		if fn, ok := value.(*starlark.Function); ok {
			functions[name] = fn
		}
	}
	return &Module{Namespace: namespace, Path: path, Functions: functions}, nil
}

// isIdentifier reports whether name parses as a single Starlark identifier.
func isIdentifier(name string) bool {
	expr, err := syntax.ParseExpr("namespace", name, 0)
	if err != nil {
		return false
	}
	_, ok := expr.(*syntax.Ident)
	return ok
}

// LoadError reports a script that could not be loaded.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("scripts/%s: %s", filepath.Base(e.File), e.Message)
}
