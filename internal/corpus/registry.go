package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Asset kinds used in error messages and listings.
const (
	KindBackground = "background"
	KindObject     = "object"
)

// BackgroundExtensions are the file extensions accepted for backgrounds.
var BackgroundExtensions = []string{".jpg", ".png"}

// ObjectExtensions are the file extensions accepted for sprites. Only PNG
// is accepted because sprites need transparency.
var ObjectExtensions = []string{".png"}

// Registry lists the asset paths of a corpus.
type Registry interface {
	// Backgrounds returns the background image paths in a stable order.
	Backgrounds() ([]string, error)

	// Objects returns the sprite image paths in a stable order.
	Objects() ([]string, error)
}

// EmptyCorpusError reports that a corpus has no usable assets of one kind.
type EmptyCorpusError struct {
	Kind string // KindBackground or KindObject
	Dir  string // Directory that was scanned; empty for static registries
}

func (e *EmptyCorpusError) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("no %s images in corpus", e.Kind)
	}
	return fmt.Sprintf("no %s images found in %s", e.Kind, e.Dir)
}

// DirRegistry lists assets from two directories on disk.
//
// Listing is not recursive. Extension matching ignores case, so "sky.JPG"
// counts as a background. Paths are joined with their directory and sorted.
type DirRegistry struct {
	BackgroundDir string
	ObjectDir     string
}

// NewDirRegistry returns a registry over the given directories.
func NewDirRegistry(backgroundDir, objectDir string) *DirRegistry {
	return &DirRegistry{BackgroundDir: backgroundDir, ObjectDir: objectDir}
}

// Backgrounds lists .jpg and .png files in BackgroundDir.
func (r *DirRegistry) Backgrounds() ([]string, error) {
	return listDir(r.BackgroundDir, BackgroundExtensions)
}

// Objects lists .png files in ObjectDir.
func (r *DirRegistry) Objects() ([]string, error) {
	return listDir(r.ObjectDir, ObjectExtensions)
}

// emptyDir returns the directory to report for an empty listing of kind.
func (r *DirRegistry) emptyDir(kind string) string {
	if kind == KindBackground {
		return r.BackgroundDir
	}
	return r.ObjectDir
}

func listDir(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !HasExtension(e.Name(), exts) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// HasExtension reports whether name ends in one of exts, ignoring case.
func HasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if ext == want {
			return true
		}
	}
	return false
}

// StaticRegistry returns fixed lists of paths.
type StaticRegistry struct {
	BackgroundPaths []string
	ObjectPaths     []string
}

// Backgrounds returns a copy of BackgroundPaths.
func (r *StaticRegistry) Backgrounds() ([]string, error) {
	return append([]string(nil), r.BackgroundPaths...), nil
}

// Objects returns a copy of ObjectPaths.
func (r *StaticRegistry) Objects() ([]string, error) {
	return append([]string(nil), r.ObjectPaths...), nil
}

// Listing is a read-only snapshot of a corpus taken at the start of a run.
type Listing struct {
	Backgrounds []string `json:"backgrounds"`
	Objects     []string `json:"objects"`
}

// Snapshot lists both asset kinds from r once.
//
// Returns *EmptyCorpusError if either list is empty. Directory read errors
// are returned wrapped and unchanged otherwise.
func Snapshot(r Registry) (*Listing, error) {
	bgs, err := r.Backgrounds()
	if err != nil {
		return nil, err
	}
	if len(bgs) == 0 {
		return nil, &EmptyCorpusError{Kind: KindBackground, Dir: dirOf(r, KindBackground)}
	}

	objs, err := r.Objects()
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, &EmptyCorpusError{Kind: KindObject, Dir: dirOf(r, KindObject)}
	}

	return &Listing{Backgrounds: bgs, Objects: objs}, nil
}

func dirOf(r Registry, kind string) string {
	if d, ok := r.(*DirRegistry); ok {
		return d.emptyDir(kind)
	}
	return ""
}
