// Package theater runs scripted commands against the live game world.
//
// A Scheduler holds a FIFO queue of Groups. Only the front group runs: each
// of its commands gets one Tick per frame, in insertion order, until every
// member has completed, and then the next group takes over. Commands reach
// the world only through the Actor, Camera, Stage, Controls and Inventory
// contracts, so the same commands drive the ebiten game and headless tools.
//
// Everything here is single-threaded and frame-stepped. Nothing blocks; a
// command that is waiting simply has not completed yet.
package theater
