package asset_test

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/asset/assettest"
)

func newTestRegistry(t *testing.T, files fstest.MapFS) (*asset.Registry, *assettest.ManualRunner) {
	t.Helper()
	runner := assettest.NewManualRunner()
	return asset.NewRegistry(files, asset.WithRunner(runner)), runner
}

func TestLoadIsNonBlockingAndGetWaitsForReady(t *testing.T) {
	files := fstest.MapFS{
		"models/box.glb": {Data: assettest.GLB(assettest.SceneDoc("Scene"), nil)},
	}
	r, runner := newTestRegistry(t, files)

	h := asset.Load[*asset.Gltf](r, "box", "models/box.glb")
	require.True(t, h.Valid())
	assert.Equal(t, asset.Loading, r.State(h))
	assert.False(t, r.IsReady(h))

	_, ok := asset.Get(r, h)
	assert.False(t, ok, "payload must not be reachable while loading")

	// the job ran but nothing is applied until Update
	require.Equal(t, 1, runner.Run("models/box.glb"))
	assert.Equal(t, asset.Loading, r.State(h))
	_, ok = asset.Get(r, h)
	assert.False(t, ok)

	events := r.Update()
	require.Len(t, events, 1)
	assert.Equal(t, asset.EventLoaded, events[0].Kind)
	assert.Equal(t, h.ID(), events[0].ID)
	assert.Equal(t, "box", events[0].Name)
	assert.Equal(t, "models/box.glb", events[0].Path)

	g, ok := asset.Get(r, h)
	require.True(t, ok)
	assert.NotNil(t, g.MustNamedScene("Scene"))
	assert.Empty(t, r.Update(), "events are reported once")
}

func TestLoadSamePathSharesSlot(t *testing.T) {
	files := fstest.MapFS{"a.glb": {Data: assettest.GLB(assettest.SceneDoc("Scene"), nil)}}
	r, runner := newTestRegistry(t, files)

	a := asset.Load[*asset.Gltf](r, "first", "a.glb")
	b := asset.Load[*asset.Gltf](r, "second", "assets/a.glb")
	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"a.glb"}, runner.Queued())

	id, ok := r.Lookup("second")
	require.True(t, ok)
	assert.Equal(t, a.ID(), id)
	assert.Equal(t, []string{"first", "second"}, r.Names())
}

func TestLoadFailures(t *testing.T) {
	files := fstest.MapFS{
		"broken.glb": {Data: []byte("glTF\x02\x00\x00\x00")},
		"noise.wav":  {Data: []byte("not a wave file")},
	}

	tests := []struct {
		name   string
		path   string
		run    bool
		target error
	}{
		{name: "missing file", path: "missing.glb", run: true, target: fs.ErrNotExist},
		{name: "corrupt glb", path: "broken.glb", run: true},
		{name: "unknown extension", path: "notes.txt", target: asset.ErrUnknownLoader},
		{name: "empty path", path: "", target: asset.ErrEmptyPath},
		{name: "escaping path", path: "../secret.glb", target: asset.ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, runner := newTestRegistry(t, files)
			h := asset.Load[*asset.Gltf](r, "x", tt.path)
			if tt.run {
				runner.RunAll()
			}

			events := r.Update()
			require.Len(t, events, 1)
			assert.Equal(t, asset.EventFailed, events[0].Kind)
			require.Error(t, events[0].Err)
			if tt.target != nil {
				assert.True(t, errors.Is(events[0].Err, tt.target), "got %v", events[0].Err)
			}

			assert.Equal(t, asset.Failed, r.State(h))
			assert.Equal(t, asset.Failed, r.RecursiveState(h))
			assert.Equal(t, events[0].Err, r.Err(h))
			_, ok := asset.Get(r, h)
			assert.False(t, ok)
		})
	}
}

func TestLoadTypeMismatchFails(t *testing.T) {
	files := fstest.MapFS{"hum.wav": {Data: assettest.WAV(asset.DefaultSampleRate, 8)}}
	r, runner := newTestRegistry(t, files)

	h := asset.Load[*asset.Gltf](r, "hum", "hum.wav")
	runner.RunAll()
	events := r.Update()
	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].Err, asset.ErrTypeMismatch)
	assert.Equal(t, asset.Failed, r.State(h))
}

func TestRecursiveStateTracksExternalBuffers(t *testing.T) {
	doc := assettest.SceneDoc("Scene")
	doc["buffers"] = []any{map[string]any{"uri": "mesh.bin", "byteLength": 4}}
	doc["images"] = []any{map[string]any{"uri": "../textures/wood.png"}}
	files := fstest.MapFS{
		"models/warehouse.gltf": {Data: assettest.GLTF(doc)},
		"models/mesh.bin":       {Data: []byte{1, 2, 3, 4}},
		"textures/wood.png":     {Data: []byte("png")},
	}
	r, runner := newTestRegistry(t, files)

	h := asset.Load[*asset.Gltf](r, asset.MainScene, "models/warehouse.gltf")
	runner.Run("models/warehouse.gltf")
	events := r.Update()
	require.Len(t, events, 1)

	assert.Equal(t, asset.Ready, r.State(h))
	assert.Equal(t, asset.Loading, r.RecursiveState(h), "dependencies still loading")
	_, ok := asset.Get(r, h)
	assert.True(t, ok, "the file itself resolves")
	_, ok = asset.GetReady(r, h)
	assert.False(t, ok, "not with its dependencies")
	require.Len(t, r.Dependencies(h), 2)
	assert.ElementsMatch(t, []string{"models/mesh.bin", "textures/wood.png"}, runner.Queued())

	runner.Run("models/mesh.bin")
	r.Update()
	assert.Equal(t, asset.Loading, r.RecursiveState(h))

	runner.Run("textures/wood.png")
	events = r.Update()
	require.Len(t, events, 1)
	assert.Equal(t, asset.EventLoaded, events[0].Kind)
	assert.Equal(t, asset.Ready, r.RecursiveState(h))
	g, ok := asset.GetReady(r, h)
	require.True(t, ok)
	assert.NotNil(t, g.MustNamedScene("Scene"))

	blob, ok := asset.Get(r, asset.Typed[*asset.Blob](r.Dependencies(h)[0]))
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4}, blob.Data)
}

func TestRecursiveStateFailsWithDependency(t *testing.T) {
	doc := assettest.SceneDoc("Scene")
	doc["buffers"] = []any{map[string]any{"uri": "gone.bin", "byteLength": 4}}
	files := fstest.MapFS{"scene.gltf": {Data: assettest.GLTF(doc)}}
	r, runner := newTestRegistry(t, files)

	h := asset.Load[*asset.Gltf](r, "scene", "scene.gltf")
	runner.RunAll()
	r.Update()
	runner.RunAll()
	events := r.Update()

	require.Len(t, events, 1)
	assert.Equal(t, asset.EventFailed, events[0].Kind)
	assert.Equal(t, asset.Ready, r.State(h))
	assert.Equal(t, asset.Failed, r.RecursiveState(h))
}

func TestQueriesOnUnknownHandles(t *testing.T) {
	r, _ := newTestRegistry(t, fstest.MapFS{})
	var zero asset.Handle[*asset.Gltf]

	assert.Equal(t, asset.Unrequested, r.State(zero))
	assert.Equal(t, asset.Unrequested, r.RecursiveState(zero))
	assert.Equal(t, asset.Unrequested, r.State(asset.ID(42)))
	assert.Nil(t, r.Err(zero))
	assert.Empty(t, r.Path(zero))
	assert.Zero(t, r.Pending())

	var nilRegistry *asset.Registry
	_, ok := asset.Get(nilRegistry, zero)
	assert.False(t, ok)
	assert.Empty(t, nilRegistry.Update())
}

func TestPoolRunnerLoadsConcurrently(t *testing.T) {
	files := fstest.MapFS{}
	names := []string{"a.glb", "b.glb", "c.glb", "d.glb", "e.glb"}
	for _, n := range names {
		files[n] = &fstest.MapFile{Data: assettest.GLB(assettest.SceneDoc("Scene"), nil)}
	}
	r := asset.NewRegistry(files, asset.WithConcurrency(2))

	var handles []asset.Handle[*asset.Gltf]
	for _, n := range names {
		handles = append(handles, asset.Load[*asset.Gltf](r, n, n))
	}

	loaded := 0
	require.Eventually(t, func() bool {
		loaded += len(r.Update())
		return loaded == len(names)
	}, testTimeout, testTick)

	for _, h := range handles {
		assert.True(t, r.IsReady(h))
	}
	assert.Zero(t, r.Pending())
}
