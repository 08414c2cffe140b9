//go:build !linux

package gpio

import "fmt"

// OpenChip is not available on non-Linux platforms.
func OpenChip(name string) (Chip, error) {
	return nil, fmt.Errorf("%w: gpio chip %s: not supported on this platform (requires Linux)", ErrHardwareFault, name)
}
