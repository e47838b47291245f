package repo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	perr "brandwatch/internal/platform/errors"
	"brandwatch/internal/services/watermark/domain"
)

// File is a JSON-file backed watermark store for single-host deployments
// The whole map is rewritten on every set; fine at watermark cardinality
type File struct {
	path string
	mu   sync.Mutex
}

var _ domain.StorePort = (*File)(nil)

// NewFile returns a file-backed watermark store rooted at path
func NewFile(path string) *File { return &File{path: path} }

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return err
	}
	m[key] = value
	return f.save(m)
}

func (f *File) GetMulti(_ context.Context, keys []string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (f *File) SetMulti(_ context.Context, values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return err
	}
	for k, v := range values {
		m[k] = v
	}
	return f.save(m)
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read state file %s", f.path)
	}
	m := map[string]string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "decode state file %s", f.path)
		}
	}
	return m, nil
}

func (f *File) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "create state dir for %s", f.path)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "encode state file")
	}
	// write-then-rename keeps readers from seeing a torn file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "write state file %s", f.path)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "replace state file %s", f.path)
	}
	return nil
}
