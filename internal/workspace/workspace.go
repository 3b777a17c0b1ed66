// Package workspace reads the lumen.yaml project file. The project file
// supplies the import table: a mapping from import paths, as written in
// `import "path"` terms, to the source files holding the imported values.
//
// The workspace layer owns all file I/O around imports. The desugarer and
// elaborator only ever see the resolved table of free-variable identities
// and the context entries carrying their types and values.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lumen-lang/lumen/internal/config"
)

// Config represents the top-level lumen.yaml configuration.
type Config struct {
	// Name is an optional project name. It is informational only.
	Name string `yaml:"name,omitempty"`

	// Imports maps import paths to source files, relative to lumen.yaml.
	//
	//	imports:
	//	  prelude: ./prelude.lumen
	Imports map[string]string `yaml:"imports,omitempty"`
}

// Workspace is a loaded project file together with its location, so that
// relative import paths can be resolved.
type Workspace struct {
	// Path is the absolute path of the lumen.yaml file.
	Path string

	Config Config
}

// Load reads and parses a lumen.yaml file.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workspace %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses lumen.yaml content from bytes. The path argument locates the
// file for error messages and relative import resolution.
func Parse(data []byte, path string) (*Workspace, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace path: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	w := &Workspace{Path: abs, Config: cfg}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Find searches for lumen.yaml starting from dir and walking up to parent
// directories. Returns the path if found, or empty string and nil error if
// no workspace file exists on the way to the filesystem root.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, config.WorkspaceFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Dir returns the directory containing the workspace file.
func (w *Workspace) Dir() string { return filepath.Dir(w.Path) }

// ResolveImport returns the absolute source file path configured for an
// import path, or false when the project declares no such import.
func (w *Workspace) ResolveImport(path string) (string, bool) {
	rel, ok := w.Config.Imports[path]
	if !ok {
		return "", false
	}
	if filepath.IsAbs(rel) {
		return rel, true
	}
	return filepath.Join(w.Dir(), rel), true
}

func (w *Workspace) validate() error {
	for name, rel := range w.Config.Imports {
		if name == "" {
			return fmt.Errorf("%s: imports: empty import path", w.Path)
		}
		if rel == "" {
			return fmt.Errorf("%s: imports[%s]: file is required", w.Path, name)
		}
		file, _ := w.ResolveImport(name)
		info, err := os.Stat(file)
		if err != nil {
			return fmt.Errorf("%s: imports[%s]: file %q not found: %w", w.Path, name, rel, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s: imports[%s]: %q is a directory", w.Path, name, rel)
		}
	}
	return nil
}
