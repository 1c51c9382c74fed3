// Package control runs the sumo control loop.
//
// Controller.Step is the pure decision for one iteration: given the phase
// state, the sensor frame and the current time it returns the next state and
// the wheel decision. Loop is the driver around it: it reads every sensor
// under its time budget, steps the controller, drives the motors, reports the
// iteration to observers and repeats until its context is canceled.
package control
