// Package source supplies the raw text of polar tables to the analysis.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Source returns the text stored under path.
type Source interface {
	Read(path string) (string, error)
}

// IsMissing reports whether err means the requested table does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// FileSource reads tables from a file system, resolving relative paths
// against Dir.
type FileSource struct {
	Fs  afero.Fs
	Dir string
}

// NewFileSource returns a FileSource on the OS file system.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Fs: afero.NewOsFs(), Dir: dir}
}

// Read implements Source.
func (s *FileSource) Read(path string) (string, error) {
	fullPath := path
	if s.Dir != "" && !filepath.IsAbs(path) {
		fullPath = filepath.Join(s.Dir, path)
	}

	data, err := afero.ReadFile(s.Fs, fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", fullPath, err)
	}
	return string(data), nil
}

// MapSource serves tables held in memory, keyed by path.
type MapSource struct {
	mu     sync.RWMutex
	tables map[string]string
}

// NewMapSource returns a MapSource seeded with tables.
func NewMapSource(tables map[string]string) *MapSource {
	m := &MapSource{tables: make(map[string]string, len(tables))}
	for path, text := range tables {
		m.tables[path] = text
	}
	return m
}

// Put stores text under path.
func (m *MapSource) Put(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[path] = text
}

// Read implements Source.
func (m *MapSource) Read(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.tables[path]
	if !ok {
		return "", fmt.Errorf("table %s: %w", path, fs.ErrNotExist)
	}
	return text, nil
}

// Result is the outcome of reading one path.
type Result struct {
	Path string
	Text string
	Err  error
}

// LoadAll reads every path from src concurrently. Results are returned in
// the order of paths; a failed read is recorded in its Result and does not
// affect the others.
func LoadAll(src Source, paths []string) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(constants.MaxConcurrentReads)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			text, err := src.Read(path)
			results[i] = Result{Path: path, Text: text, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
