package assets

import (
	"fmt"
	"os"
)

// FilesystemLoader loads assets from a directory on disk.
type FilesystemLoader struct {
	loader
	dir string
}

// NewFilesystemLoader creates a FilesystemLoader rooted at dir.
// Returns ErrInvalidBasePath if dir is not an existing directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, dir)
	}

	f := &FilesystemLoader{dir: dir}
	f.read = f.readFile
	return f, nil
}

// Dir returns the directory assets are read from.
func (f *FilesystemLoader) Dir() string {
	return f.dir
}

// readFile reads path through an os.Root so the read cannot leave dir.
// The root is opened per read.
func (f *FilesystemLoader) readFile(path string) ([]byte, error) {
	root, err := os.OpenRoot(f.dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = root.Close() }()
	return root.ReadFile(path)
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
