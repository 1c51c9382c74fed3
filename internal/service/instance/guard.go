// Package instance keeps a second controller from fighting over the motors.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another process with the same executable exists.
var ErrAlreadyRunning = errors.New("another instance is already running")

// lister enumerates running processes.
type lister func() ([]ps.Process, error)

// EnsureSingle fails with ErrAlreadyRunning if a process other than this one
// runs the executable called name.
func EnsureSingle(name string) error {
	return ensureSingle(ps.Processes, os.Getpid(), name)
}

// ExecutableName returns the base name of the running binary.
func ExecutableName() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}

	return filepath.Base(path), nil
}

func ensureSingle(list lister, self int, name string) error {
	processList, err := list()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processList {
		if process.Pid() == self {
			continue
		}

		if !sameExecutable(process.Executable(), name) {
			continue
		}

		return fmt.Errorf("%w: %s (pid %d)", ErrAlreadyRunning, name, process.Pid())
	}

	return nil
}

// sameExecutable compares names, ignoring case and the .exe suffix on Windows.
func sameExecutable(a, b string) bool {
	if runtime.GOOS != "windows" {
		return a == b
	}

	trim := func(s string) string {
		return strings.TrimSuffix(strings.ToLower(s), ".exe")
	}

	return trim(a) == trim(b)
}
