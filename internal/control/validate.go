package control

import (
	"math"
	"strings"
)

// Validators are pure and run before any side effect. Every public operation
// checks its inputs with these and bails out with its failure value on the
// first miss, without touching the resolver or the network.

// IsPositiveID reports whether id is usable as a resource or endpoint id.
func IsPositiveID(id int) bool {
	return id > 0
}

// IsNonEmptyString reports whether s contains anything besides whitespace.
func IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsOptionalEndpointID reports whether id is either absent (0) or a valid
// endpoint id. Negative values are never valid.
func IsOptionalEndpointID(id int) bool {
	return id == 0 || IsPositiveID(id)
}

// IsValidTimeoutMS reports whether ms is a usable restart timeout: finite
// and non-negative.
func IsValidTimeoutMS(ms float64) bool {
	return !math.IsNaN(ms) && !math.IsInf(ms, 0) && ms >= 0
}
