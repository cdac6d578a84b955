package draftstorage

import (
	"context"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"booking-checkout/internal/infra"
	"booking-checkout/internal/pkg/errs"
)

const fileExt = ".json"

// File stores one JSON document per key under dir. Writes go through a temp file and a
// rename so a reader never sees a half-written draft.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errs.Wrapf(err, "create draft directory %s", dir)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+fileExt)
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, infra.WrapRepoErr("draft not found", nil, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read draft file", err)
	}
	return data, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".draft-*")
	if err != nil {
		return infra.WrapRepoErr("failed to create temp draft file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return infra.WrapRepoErr("failed to write draft file", err)
	}
	if err := tmp.Close(); err != nil {
		return infra.WrapRepoErr("failed to close draft file", err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return infra.WrapRepoErr("failed to replace draft file", err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return infra.WrapRepoErr("failed to remove draft file", err)
	}
	return nil
}
