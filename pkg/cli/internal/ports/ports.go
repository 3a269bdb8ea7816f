// Package ports provides port availability checking.
package ports

import (
	"fmt"
	"net"
	"strconv"
)

// IsAvailable checks if a port is available for binding.
// Returns true if the port is available, false otherwise.
func IsAvailable(port int) bool {
	return Check(port) == nil
}

// Check checks if a port is available and returns an error if not.
// Port 0 always succeeds.
func Check(port int) error {
	if port == 0 {
		return nil
	}
	ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("port %d is not available: %w", port, err)
	}
	_ = ln.Close()
	return nil
}
