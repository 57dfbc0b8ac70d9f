package asset

import (
	"errors"
	"path"
	"strings"
)

var (
	ErrEmptyPath     = errors.New("asset: empty path")
	ErrInvalidPath   = errors.New("asset: invalid path")
	ErrUnknownLoader = errors.New("asset: no loader for extension")
	ErrTypeMismatch  = errors.New("asset: payload type does not match handle")
)

// LoadContext is handed to a Loader for one file. Loaders record the files
// the asset references so the registry can track them as dependencies.
type LoadContext struct {
	Path string
	deps []string
}

// Depend records a file referenced by the asset being loaded. Relative URIs
// resolve against the asset's directory.
func (c *LoadContext) Depend(uri string) {
	if c == nil || strings.TrimSpace(uri) == "" {
		return
	}
	resolved := uri
	if !path.IsAbs(uri) {
		resolved = path.Join(path.Dir(c.Path), uri)
	}
	for _, d := range c.deps {
		if d == resolved {
			return
		}
	}
	c.deps = append(c.deps, resolved)
}

// Dependencies returns the files recorded so far.
func (c *LoadContext) Dependencies() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.deps...)
}

// Loader decodes raw file bytes into an asset payload. Load runs on a worker
// goroutine and must not touch registry state.
type Loader interface {
	Extensions() []string
	Load(ctx *LoadContext, data []byte) (any, error)
}

// Blob is the payload of files without a dedicated loader, such as the
// external buffers of a .gltf.
type Blob struct {
	Path string
	Data []byte
}

// BlobLoader keeps the file bytes as-is.
type BlobLoader struct{}

func (BlobLoader) Extensions() []string {
	return nil
}

func (BlobLoader) Load(ctx *LoadContext, data []byte) (any, error) {
	return &Blob{Path: ctx.Path, Data: data}, nil
}
