// Package match runs one simulated sumo match.
//
// Run loads the configuration, builds the simulated arena, wires its sensors
// and motors into the control loop, and stops when a robot leaves the ring,
// the match time runs out, or the context is canceled. The trace recorder and
// the health endpoint are attached when configured.
package match
