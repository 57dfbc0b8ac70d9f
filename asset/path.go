package asset

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// cleanPath turns a configured asset path into an fs.FS name relative to the
// asset root. Leading "assets/" and absolute prefixes up to "/assets/" are
// dropped so paths copied from a scene editor still resolve.
func cleanPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", ErrEmptyPath
	}
	s := filepath.ToSlash(p)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		s = s[idx+len("/assets/"):]
	}
	s = strings.TrimPrefix(s, "assets/")
	s = strings.TrimLeft(path.Clean(s), "/")
	if !fs.ValidPath(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return s, nil
}

func extension(p string) string {
	return strings.ToLower(path.Ext(p))
}
