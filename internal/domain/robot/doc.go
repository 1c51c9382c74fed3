// Package robot contains the core domain types of the sumo controller.
//
// It defines the per-iteration readings (DistanceReading, LineReading), the
// per-side drive command (WheelCommand, Wheels), the behaviour Phase and the
// interfaces of the hardware collaborators the control core consumes.
package robot
