package asset_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/asset/assettest"
)

func packFiles() fstest.MapFS {
	return fstest.MapFS{
		"models/starting_warehouse.glb": {Data: assettest.GLB(assettest.SceneDoc("Scene", "shelf"), nil)},
		"models/box.glb":                {Data: assettest.GLB(assettest.SceneDoc("Box"), nil)},
		"audio/ambience.wav":            {Data: assettest.WAV(asset.DefaultSampleRate, 16)},
	}
}

func TestNewPack(t *testing.T) {
	r, runner := newTestRegistry(t, packFiles())

	pack, err := asset.NewPack(r, asset.PackPaths{
		MainScene: "models/starting_warehouse.glb",
		Package:   "models/box.glb",
		Ambience:  "audio/ambience.wav",
	}, "")
	require.NoError(t, err)

	name, primary := pack.Primary()
	assert.Equal(t, asset.MainScene, name)
	assert.Equal(t, pack.MainScene.ID(), primary.ID())

	var names []string
	for _, e := range pack.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{asset.MainScene, asset.Package, asset.Ambience}, names)

	_, ok := pack.Handle(asset.Scanner)
	assert.False(t, ok, "scanner was not configured")
	_, ok = pack.Handle("nope")
	assert.False(t, ok)

	assert.Equal(t, asset.Loading, pack.CollectionState(r))
	runner.Run("models/starting_warehouse.glb")
	r.Update()
	assert.Equal(t, asset.Loading, pack.CollectionState(r))

	runner.RunAll()
	r.Update()
	assert.Equal(t, asset.Ready, pack.CollectionState(r))

	clip, ok := asset.Get(r, pack.Ambience)
	require.True(t, ok)
	assert.NotEmpty(t, clip.PCM)
}

func TestNewPackCollectionFailure(t *testing.T) {
	r, runner := newTestRegistry(t, packFiles())
	pack, err := asset.NewPack(r, asset.PackPaths{
		MainScene:  "models/starting_warehouse.glb",
		PlayerHand: "models/hand.glb",
	}, asset.MainScene)
	require.NoError(t, err)

	runner.RunAll()
	r.Update()
	assert.Equal(t, asset.Ready, r.RecursiveState(pack.MainScene))
	assert.Equal(t, asset.Failed, pack.CollectionState(r))
}

func TestNewPackErrors(t *testing.T) {
	r, _ := newTestRegistry(t, packFiles())

	tests := []struct {
		name    string
		paths   asset.PackPaths
		primary string
	}{
		{name: "unknown primary", paths: asset.PackPaths{MainScene: "a.glb"}, primary: "lobby"},
		{name: "primary without path", paths: asset.PackPaths{Package: "b.glb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := asset.NewPack(r, tt.paths, tt.primary)
			assert.Error(t, err)
		})
	}

	_, err := asset.NewPack(nil, asset.PackPaths{MainScene: "a.glb"}, "")
	assert.Error(t, err)
}
