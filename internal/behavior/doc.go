// Package behavior holds the decision logic of the sumo controller.
//
// Avoid keeps the robot inside the ring from the two line readings. Machine
// is the search/attack state machine driven by elapsed phase time and the
// distance readings. Arbitrate decides which of the two commands reaches the
// wheels. Everything here is pure: state goes in and comes back out.
package behavior
