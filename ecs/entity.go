package ecs

import "strconv"

// Entity is a handle to a slot in the world. The low 32 bits are the slot
// id and the high 32 bits its generation, so a handle kept past
// DestroyEntity never matches the entity that reuses the slot.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders the handle as id/generation, e.g. "3/1".
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "/" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e could name an entity. The zero handle never does.
func (e Entity) Valid() bool {
	return e.id() != 0
}
