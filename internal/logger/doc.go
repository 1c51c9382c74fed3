// Package logger wraps zap for the sumo controller.
//
// A process-wide sugared logger is configured once from the CLI. Loggers
// travel in context.Context: services name theirs with WithName, the control
// loop adds run-scoped fields with WithKV, and every call site pulls the logger
// back out with FromContext through the leveled helpers (Info, DebugKV, ...).
package logger
