package component

// Input stores per-frame input state. SpawnPressed is true only on the tick
// the spawn key went down.
type Input struct {
	SpawnHeld    bool
	SpawnPressed bool
}

var InputComponent = NewComponent[Input]()
