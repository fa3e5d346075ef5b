package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
)

// File stores each key as a file below a root directory. Writes go to a
// temporary file first and are renamed into place.
type File struct {
	mu   sync.Mutex
	root string
}

// NewFile returns a file store rooted at dir. The directory is created on
// first write.
func NewFile(dir string) *File {
	return &File{root: dir}
}

// Root returns the store's root directory.
func (f *File) Root() string {
	return f.root
}

// Path returns the file a key is stored in.
func (f *File) Path(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key)+constants.StoreFileExt)
}

// Get implements Store.
func (f *File) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.Path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WrapIO("read", path, err)
	}
	return data, true, nil
}

// Set implements Store.
func (f *File) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.Path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close() //nolint:errcheck
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Chmod(constants.SecureFilePermissions); err != nil {
		tmp.Close() //nolint:errcheck
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
