package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedSpecs(t *testing.T) {
	pack, err := LoadAssetPackSpec()
	require.NoError(t, err)
	assert.Equal(t, "main_scene", pack.Primary)
	assert.Equal(t, "primary", pack.WaitFor)
	assert.Equal(t, "Scene", pack.Scene)
	assert.Equal(t, "models/starting_warehouse.glb", pack.Assets.MainScene)
	assert.Equal(t, "models/box.glb", pack.Assets.Package)
	assert.Equal(t, "audio/ambience.wav", pack.Assets.Ambience)
	require.NotNil(t, pack.Ambience.Loop)
	assert.True(t, *pack.Ambience.Loop)

	pkg, err := LoadPackageSpec()
	require.NoError(t, err)
	assert.Equal(t, "G", pkg.SpawnKey)
	assert.InDelta(t, 2.5, pkg.Transform.Y, 1e-9)
	assert.InDelta(t, 1.2, pkg.Friction, 1e-9)
	w, h, d := pkg.Collider.Size()
	assert.Equal(t, []float64{0.7, 0.7, 0.7}, []float64{w, h, d})

	ground, err := LoadGroundSpec()
	require.NoError(t, err)
	assert.True(t, ground.Enabled)
	w, h, _ = ground.Collider.Size()
	assert.Greater(t, w, 10*h, "ground is a thin slab")
}

func TestSpecDefaults(t *testing.T) {
	var pkg PackageSpec
	pkg.applyDefaults()
	assert.Equal(t, "G", pkg.SpawnKey)
	assert.InDelta(t, 0.7, pkg.Collider.Edge, 1e-9)
	assert.InDelta(t, 1.2, pkg.Friction, 1e-9)
	assert.InDelta(t, 1, pkg.Mass, 1e-9)

	pack := AssetPackSpec{WaitFor: " Collection "}
	pack.applyDefaults()
	assert.Equal(t, "collection", pack.WaitFor)
	assert.Equal(t, "main_scene", pack.Primary)
	require.NoError(t, pack.validate())

	bad := AssetPackSpec{WaitFor: "forever"}
	bad.applyDefaults()
	assert.Error(t, bad.validate())
}

func TestPrepareInjectedSpecs(t *testing.T) {
	pack := &AssetPackSpec{WaitFor: "Collection"}
	require.NoError(t, pack.Prepare())
	assert.Equal(t, "collection", pack.WaitFor)
	assert.Equal(t, "Scene", pack.Scene)

	assert.Error(t, (&AssetPackSpec{WaitFor: "whenever"}).Prepare())

	pkg := &PackageSpec{}
	require.NoError(t, pkg.Prepare())
	assert.Equal(t, "G", pkg.SpawnKey)

	ground := &GroundSpec{}
	require.NoError(t, ground.Prepare())
	assert.InDelta(t, 200, ground.Collider.Width, 1e-9)
}

func TestPackageSpecKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    ebiten.Key
		wantErr bool
	}{
		{name: "letter", key: "G", want: ebiten.KeyG},
		{name: "lower case", key: "h", want: ebiten.KeyH},
		{name: "named", key: "Space", want: ebiten.KeySpace},
		{name: "digit", key: "Digit7", want: ebiten.KeyDigit7},
		{name: "padded", key: " Enter ", want: ebiten.KeyEnter},
		{name: "function key", key: "F5", want: ebiten.KeyF5},
		{name: "unknown", key: "NotAKey", wantErr: true},
		{name: "empty", key: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := PackageSpec{SpawnKey: tt.key}
			got, err := spec.Key()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	bad := &PackageSpec{SpawnKey: "NotAKey"}
	assert.Error(t, bad.Prepare())
}

func TestColliderSize(t *testing.T) {
	tests := []struct {
		name    string
		spec    ColliderSpec
		w, h, d float64
	}{
		{name: "cube", spec: ColliderSpec{Edge: 1}, w: 1, h: 1, d: 1},
		{name: "slab", spec: ColliderSpec{Width: 10, Height: 0.2, Depth: 8}, w: 10, h: 0.2, d: 8},
		{name: "edge with override", spec: ColliderSpec{Edge: 1, Height: 2}, w: 1, h: 2, d: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, d := tt.spec.Size()
			assert.Equal(t, []float64{tt.w, tt.h, tt.d}, []float64{w, h, d})
		})
	}
}

func TestDiskOverrideWins(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageFile), []byte("friction: 1.7\ncollider:\n  edge: 1\n"), 0o644))

	spec, err := LoadPackageSpec()
	require.NoError(t, err)
	assert.InDelta(t, 1.7, spec.Friction, 1e-9)
	assert.InDelta(t, 1, spec.Collider.Edge, 1e-9)
	assert.Equal(t, "G", spec.SpawnKey)

	_, ok := ModTime("prefabs/" + PackageFile)
	assert.True(t, ok)

	_, err = LoadSpec[PackageSpec]("missing.yaml")
	assert.Error(t, err)
}

func TestWatcherReportsChangedSpecs(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageFile), []byte("friction: 1.5\n"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, PackageFile, got[0])

	require.NoError(t, w.Close())
	assert.NotPanics(t, func() { w.Drain() })
}
