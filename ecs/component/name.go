package component

// Name is the script-facing identifier of an actor. Unique per map.
type Name struct {
	Value  string
	Prefab string
}

var NameComponent = NewComponent[Name]()
