package component

import "github.com/milk9111/theater/common"

type Facing struct {
	Dir common.Facing
}

var FacingComponent = NewComponent[Facing]()
