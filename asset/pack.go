package asset

import (
	"errors"
	"fmt"
)

// Logical names of the assets in a Pack.
const (
	MainScene  = "main_scene"
	Package    = "package"
	Scanner    = "scanner"
	Ambience   = "ambience"
	PlayerHand = "player_hand"
)

var ErrUnknownAsset = errors.New("asset: unknown pack name")

// PackPaths lists the file of every pack asset, relative to the asset root.
// Empty paths are skipped; the primary must be set.
type PackPaths struct {
	MainScene  string
	Package    string
	Scanner    string
	Ambience   string
	PlayerHand string
}

// Pack is the fixed set of named assets one scene needs. The handles are set
// once by NewPack; their load states change as the registry progresses.
type Pack struct {
	MainScene  Handle[*Gltf]
	Package    Handle[*Gltf]
	Scanner    Handle[*Gltf]
	Ambience   Handle[*AudioClip]
	PlayerHand Handle[*Gltf]

	primary string
}

// NewPack requests every configured asset from r. primary names the asset
// whose readiness drives the load state; empty means MainScene.
func NewPack(r *Registry, paths PackPaths, primary string) (*Pack, error) {
	if r == nil {
		return nil, errors.New("asset: new pack: nil registry")
	}
	if primary == "" {
		primary = MainScene
	}
	if _, ok := paths.byName()[primary]; !ok {
		return nil, fmt.Errorf("asset: new pack: %w %q", ErrUnknownAsset, primary)
	}
	if paths.byName()[primary] == "" {
		return nil, fmt.Errorf("asset: new pack: primary %q has no path", primary)
	}

	p := &Pack{primary: primary}
	if paths.MainScene != "" {
		p.MainScene = Load[*Gltf](r, MainScene, paths.MainScene)
	}
	if paths.Package != "" {
		p.Package = Load[*Gltf](r, Package, paths.Package)
	}
	if paths.Scanner != "" {
		p.Scanner = Load[*Gltf](r, Scanner, paths.Scanner)
	}
	if paths.Ambience != "" {
		p.Ambience = Load[*AudioClip](r, Ambience, paths.Ambience)
	}
	if paths.PlayerHand != "" {
		p.PlayerHand = Load[*Gltf](r, PlayerHand, paths.PlayerHand)
	}
	return p, nil
}

func (p PackPaths) byName() map[string]string {
	return map[string]string{
		MainScene:  p.MainScene,
		Package:    p.Package,
		Scanner:    p.Scanner,
		Ambience:   p.Ambience,
		PlayerHand: p.PlayerHand,
	}
}

// Primary returns the name and handle of the asset that drives the load state.
func (p *Pack) Primary() (string, AnyHandle) {
	if p == nil {
		return "", nil
	}
	h, _ := p.Handle(p.primary)
	return p.primary, h
}

// Handle returns the handle registered under a pack name.
func (p *Pack) Handle(name string) (AnyHandle, bool) {
	if p == nil {
		return nil, false
	}
	var h AnyHandle
	switch name {
	case MainScene:
		h = p.MainScene
	case Package:
		h = p.Package
	case Scanner:
		h = p.Scanner
	case Ambience:
		h = p.Ambience
	case PlayerHand:
		h = p.PlayerHand
	default:
		return nil, false
	}
	return h, h.ID() != 0
}

// PackEntry is one requested asset of a pack.
type PackEntry struct {
	Name   string
	Handle AnyHandle
}

// Entries returns the requested assets in a fixed order.
func (p *Pack) Entries() []PackEntry {
	if p == nil {
		return nil
	}
	var out []PackEntry
	for _, name := range []string{MainScene, Package, Scanner, Ambience, PlayerHand} {
		if h, ok := p.Handle(name); ok {
			out = append(out, PackEntry{Name: name, Handle: h})
		}
	}
	return out
}

// CollectionState folds the recursive state of every pack asset: Failed if
// any failed, Ready once all are ready, Loading otherwise.
func (p *Pack) CollectionState(r *Registry) LoadState {
	entries := p.Entries()
	if len(entries) == 0 {
		return Unrequested
	}
	state := Ready
	for _, e := range entries {
		switch r.RecursiveState(e.Handle) {
		case Failed:
			return Failed
		case Ready:
		default:
			state = Loading
		}
	}
	return state
}
