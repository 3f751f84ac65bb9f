package common

import (
	"fmt"
	"strings"
)

type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}

// ParseFacing accepts the names scripts and prefabs use.
func ParseFacing(s string) (Facing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "":
		return FacingDown, nil
	case "up":
		return FacingUp, nil
	case "left":
		return FacingLeft, nil
	case "right":
		return FacingRight, nil
	}
	return FacingDown, fmt.Errorf("unknown facing %q", s)
}
