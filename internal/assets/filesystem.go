package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NewFilesystemLoader returns a Loader over a directory on disk.
// basePath must be an existing, readable directory; symlinks inside it may
// not point outside it.
func NewFilesystemLoader(basePath string) (*Loader, error) {
	root, err := resolveBasePath(basePath)
	if err != nil {
		return nil, err
	}
	return &Loader{
		fsys:    os.DirFS(root),
		contain: func(rel string) error { return containedIn(root, filepath.Join(root, filepath.FromSlash(rel))) },
	}, nil
}

func resolveBasePath(basePath string) (string, error) {
	if basePath == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return "", fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return "", fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return "", fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return abs, nil
}

// containedIn reports ErrPathTraversal when file, after resolving symlinks,
// is not below root. A missing file keeps its unresolved path.
func containedIn(root, file string) error {
	if resolved, err := filepath.EvalSymlinks(file); err == nil {
		file = resolved
	}
	if !strings.HasPrefix(file, root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, file, root)
	}
	return nil
}
