// Package store persists best times in a small YAML file of key: seconds.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// File is a mutex-guarded map of best times backed by one file. It is
// shared between SSH sessions.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]float64
}

// Open reads path. A missing file yields an empty store.
func Open(path string) (*File, error) {
	f := &File{path: path, values: map[string]float64{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}
	if f.values == nil {
		f.values = map[string]float64{}
	}
	return f, nil
}

// Get returns the stored value for key, or 0.
func (f *File) Get(key string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key]
}

// Set stores v under key and rewrites the file before returning. The
// in-memory value is kept even when the write fails.
func (f *File) Set(key string, v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = v
	return f.flush()
}

// flush writes a temporary file next to the target and renames it over.
func (f *File) flush() error {
	data, err := yaml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".vd_best-*")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", f.path, err)
	}
	return nil
}

// Slot binds one key of a File.
type Slot struct {
	file *File
	key  string
}

// Slot returns a handle for key.
func (f *File) Slot(key string) *Slot {
	return &Slot{file: f, key: key}
}

// Load returns the slot's value, 0 when absent.
func (s *Slot) Load() float64 {
	return s.file.Get(s.key)
}

// Save writes v to the slot.
func (s *Slot) Save(v float64) error {
	return s.file.Set(s.key, v)
}

// Memory is an in-process best time, for frontends with no writable disk.
type Memory struct {
	mu    sync.Mutex
	value float64
}

func (m *Memory) Load() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

func (m *Memory) Save(v float64) error {
	m.mu.Lock()
	m.value = v
	m.mu.Unlock()
	return nil
}
