// internal/runutil/runutil.go
package runutil

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// laneBits is the width of one lane's score register.
const laneBits = 32

// DefaultLanes picks a lane count matching the host's widest vector unit:
// one lane per 32-bit element. Without a known unit it falls back to 8,
// the lane count of the reference accelerator.
func DefaultLanes() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 512 / laneBits
	case cpu.X86.HasAVX2:
		return 256 / laneBits
	case cpu.ARM64.HasASIMD:
		return 128 / laneBits
	default:
		return 8
	}
}

// EffectiveLanes returns requested if positive, else DefaultLanes.
func EffectiveLanes(requested int) int {
	if requested > 0 {
		return requested
	}
	return DefaultLanes()
}

// EffectiveThreads returns requested if positive, else the CPU count.
func EffectiveThreads(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}

// LaneThreads is the engine count for the lanes backend: an explicit
// request, else min(CPUs, lanes).
func LaneThreads(requested, lanes int) int {
	if requested > 0 {
		return requested
	}
	if n := EffectiveThreads(0); n < lanes {
		return n
	}
	return lanes
}

// LaneWarnings flags lanes-backend configurations where explicitly
// requested threads can never all be busy.
func LaneWarnings(backend string, lanes, requestedThreads int) []string {
	if backend != "lanes" || requestedThreads <= lanes {
		return nil
	}
	return []string{"more threads than lanes; extra threads stay idle"}
}
