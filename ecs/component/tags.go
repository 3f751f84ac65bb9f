package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// SpawnedTag marks actors created by a cutscene rather than the map, so a
// refresh can tell them apart.
type SpawnedTag struct{}

var SpawnedTagComponent = NewComponent[SpawnedTag]()

// WallTag marks the single entity that carries the current map's solid tiles.
type WallTag struct{}

var WallTagComponent = NewComponent[WallTag]()
