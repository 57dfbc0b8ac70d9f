package component

// Package marks a spawned crate. Serial counts spawns from 1.
type Package struct {
	Serial int
}

var PackageComponent = NewComponent[Package]()
