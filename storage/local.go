package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/netriktechworks/site-backend/errs"
)

// LocalStore keeps files under root/{category}/{name}.
type LocalStore struct {
	root string
}

// NewLocalStore creates root and one folder per category.
func NewLocalStore(root string) (*LocalStore, error) {
	for _, c := range Categories {
		if err := os.MkdirAll(filepath.Join(root, string(c)), 0o755); err != nil {
			return nil, errs.NewStorageWriteError(string(c), err)
		}
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Put(_ context.Context, category Category, name string, r io.Reader, _ string) error {
	if err := ValidName(name); err != nil {
		return err
	}

	dir := filepath.Join(s.root, string(category))
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return errs.NewStorageWriteError(string(category), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return errs.NewStorageWriteError(string(category), err)
	}
	if err := tmp.Close(); err != nil {
		return errs.NewStorageWriteError(string(category), err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return errs.NewStorageWriteError(string(category), err)
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, category Category, name string) (io.ReadCloser, error) {
	if err := ValidName(name); err != nil {
		return nil, errs.NewNotFound("file")
	}

	f, err := os.Open(filepath.Join(s.root, string(category), name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewNotFound("file")
	}
	if err != nil {
		return nil, errs.NewStorageReadError(PublicPath(category, name), err)
	}
	return f, nil
}
