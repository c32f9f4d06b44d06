//go:build linux || darwin

package rlimit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ApplyAddressSpace caps the virtual address space of this process and of
// every child it spawns afterwards. A zero limit leaves the ceiling alone.
func ApplyAddressSpace(limitBytes uint64) error {
	if limitBytes == 0 {
		return nil
	}

	var current unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_AS, &current); err != nil {
		return fmt.Errorf("reading address-space limit: %w", err)
	}

	// an unprivileged process cannot raise its hard limit
	limit := limitBytes
	if current.Max != unix.RLIM_INFINITY && current.Max < limit {
		limit = current.Max
	}

	if err := unix.Setrlimit(unix.RLIMIT_AS, &unix.Rlimit{Cur: limit, Max: limit}); err != nil {
		return fmt.Errorf("setting address-space limit to %d bytes: %w", limit, err)
	}
	return nil
}

// AddressSpace returns the current soft limit.
func AddressSpace() (uint64, error) {
	var current unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_AS, &current); err != nil {
		return 0, fmt.Errorf("reading address-space limit: %w", err)
	}
	return current.Cur, nil
}
