package component

import "github.com/milk9111/warehouse/asset"

// AudioSource plays a clip once the audio system sees it. Started is set by
// the audio system so each source plays only once.
type AudioSource struct {
	Clip    asset.Handle[*asset.AudioClip]
	Name    string
	Loop    bool
	Volume  float64
	Started bool
}

var AudioSourceComponent = NewComponent[AudioSource]()
