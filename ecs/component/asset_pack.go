package component

import "github.com/milk9111/warehouse/asset"

type WaitFor int

const (
	// WaitForPrimary finishes loading when the primary asset and its
	// dependencies are ready.
	WaitForPrimary WaitFor = iota
	// WaitForCollection finishes loading when every pack asset is ready.
	WaitForCollection
)

func (w WaitFor) String() string {
	if w == WaitForCollection {
		return "collection"
	}
	return "primary"
}

// AssetPack stores the scene's registry and named handles on a dedicated ECS
// entity.
type AssetPack struct {
	Registry *asset.Registry
	Pack     *asset.Pack
	WaitFor  WaitFor
}

var AssetPackComponent = NewComponent[AssetPack]()
