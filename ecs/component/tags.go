package component

type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()

type AmbienceTag struct{}

var AmbienceTagComponent = NewComponent[AmbienceTag]()
