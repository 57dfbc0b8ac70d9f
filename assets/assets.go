// Package assets connects the asset registry to the host: the on-disk asset
// root and Ebiten's audio output.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Open returns the asset root as a file system for the registry.
func Open(root string) (fs.FS, error) {
	if root == "" {
		return nil, fmt.Errorf("assets: open: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: open %s: not a directory", root)
	}
	return os.DirFS(abs), nil
}
