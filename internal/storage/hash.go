package storage

import (
	"fmt"
	"strconv"
)

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

func parseHash(s string) (uint64, error) {
	h, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("storage: bad hash %q: %w", s, err)
	}
	return h, nil
}
