// Package status exposes the standard gRPC health service so a supervisor can
// tell whether the control loop is running.
package status
