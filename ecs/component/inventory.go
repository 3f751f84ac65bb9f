package component

type Inventory struct {
	Items map[string]int
	Order []string
}

var InventoryComponent = NewComponent[Inventory]()
