package prefabs

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

const (
	AssetPackFile = "asset_pack.yaml"
	PackageFile   = "package.yaml"
	GroundFile    = "ground.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Scale float64 `yaml:"scale"`
}

// ColliderSpec is a box. Edge sets a cube; Width, Height and Depth override
// it per axis. All values are full lengths, not half extents.
type ColliderSpec struct {
	Edge   float64 `yaml:"edge"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

// Size returns the full box lengths along X, Y and Z.
func (c ColliderSpec) Size() (w, h, d float64) {
	w, h, d = c.Edge, c.Edge, c.Edge
	if c.Width > 0 {
		w = c.Width
	}
	if c.Height > 0 {
		h = c.Height
	}
	if c.Depth > 0 {
		d = c.Depth
	}
	return w, h, d
}

type AssetPathsSpec struct {
	MainScene  string `yaml:"main_scene"`
	Package    string `yaml:"package"`
	Scanner    string `yaml:"scanner"`
	Ambience   string `yaml:"ambience"`
	PlayerHand string `yaml:"player_hand"`
}

type AmbienceSpec struct {
	Volume float64 `yaml:"volume"`
	Loop   *bool   `yaml:"loop"`
}

// AssetPackSpec lists the files the warehouse scene loads and how the load
// state decides it is done.
type AssetPackSpec struct {
	Primary  string         `yaml:"primary"`
	WaitFor  string         `yaml:"wait_for"`
	Scene    string         `yaml:"scene"`
	Assets   AssetPathsSpec `yaml:"assets"`
	Ambience AmbienceSpec   `yaml:"ambience"`
}

func (s *AssetPackSpec) applyDefaults() {
	if s.Primary == "" {
		s.Primary = "main_scene"
	}
	s.WaitFor = strings.ToLower(strings.TrimSpace(s.WaitFor))
	if s.WaitFor == "" {
		s.WaitFor = "primary"
	}
	if s.Scene == "" {
		s.Scene = "Scene"
	}
	if s.Ambience.Volume <= 0 {
		s.Ambience.Volume = 1
	}
	if s.Ambience.Loop == nil {
		loop := true
		s.Ambience.Loop = &loop
	}
}

func (s *AssetPackSpec) validate() error {
	switch s.WaitFor {
	case "primary", "collection":
	default:
		return fmt.Errorf("prefabs: %s: wait_for must be primary or collection, got %q", AssetPackFile, s.WaitFor)
	}
	return nil
}

// Prepare fills unset fields with defaults and validates the result. Specs
// built in code go through it like loaded ones.
func (s *AssetPackSpec) Prepare() error {
	s.applyDefaults()
	return s.validate()
}

func LoadAssetPackSpec() (*AssetPackSpec, error) {
	spec, err := LoadSpec[AssetPackSpec](AssetPackFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Prepare(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// PackageSpec tunes the crates spawned at runtime.
type PackageSpec struct {
	Name      string        `yaml:"name"`
	Scene     string        `yaml:"scene"`
	SpawnKey  string        `yaml:"spawn_key"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Friction  float64       `yaml:"friction"`
	Mass      float64       `yaml:"mass"`
}

func (s *PackageSpec) applyDefaults() {
	if s.Name == "" {
		s.Name = "package"
	}
	if s.SpawnKey == "" {
		s.SpawnKey = "G"
	}
	if s.Transform.Scale <= 0 {
		s.Transform.Scale = 1
	}
	if s.Collider.Edge <= 0 && s.Collider.Width <= 0 {
		s.Collider.Edge = 0.7
	}
	if s.Friction <= 0 {
		s.Friction = 1.2
	}
	if s.Mass <= 0 {
		s.Mass = 1
	}
}

// Key resolves SpawnKey with Ebiten's key names ("G", "Space", "Digit7").
func (s *PackageSpec) Key() (ebiten.Key, error) {
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(strings.TrimSpace(s.SpawnKey))); err != nil {
		return 0, fmt.Errorf("prefabs: %s: spawn_key: %w", PackageFile, err)
	}
	return key, nil
}

func (s *PackageSpec) Prepare() error {
	s.applyDefaults()
	_, err := s.Key()
	return err
}

func LoadPackageSpec() (*PackageSpec, error) {
	spec, err := LoadSpec[PackageSpec](PackageFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Prepare(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// GroundSpec describes the fixed slab spawned under the scene.
type GroundSpec struct {
	Enabled   bool          `yaml:"enabled"`
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Friction  float64       `yaml:"friction"`
}

func (s *GroundSpec) applyDefaults() {
	if s.Name == "" {
		s.Name = "ground"
	}
	if s.Transform.Scale <= 0 {
		s.Transform.Scale = 1
	}
	if s.Collider.Width <= 0 {
		s.Collider.Width = 200
	}
	if s.Collider.Height <= 0 {
		s.Collider.Height = 0.2
	}
	if s.Collider.Depth <= 0 {
		s.Collider.Depth = 200
	}
	if s.Friction <= 0 {
		s.Friction = 1
	}
}

func (s *GroundSpec) Prepare() error {
	s.applyDefaults()
	return nil
}

func LoadGroundSpec() (*GroundSpec, error) {
	spec, err := LoadSpec[GroundSpec](GroundFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Prepare(); err != nil {
		return nil, err
	}
	return &spec, nil
}
