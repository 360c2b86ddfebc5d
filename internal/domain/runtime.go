package domain

import (
	"fmt"
	"strings"
)

const (
	RuntimeVersionUnset   = "unset"
	RuntimeVersionInvalid = "invalid"

	DefaultRuntimeLabel = "New Java"
	DefaultHeapMaxMB    = 4096
	DefaultHeapMinMB    = 2048
)

type rangeKind uint8

const (
	rangeInactive rangeKind = iota
	rangeActive
)

// ReleaseRange is either Active with both bounds set or Inactive. The zero
// value is Inactive and never matches a release.
type ReleaseRange struct {
	kind rangeKind
	min  string
	max  string
}

// ActiveRange returns an active range, or an inactive one if either bound is empty.
func ActiveRange(min, max string) ReleaseRange {
	min = strings.TrimSpace(min)
	max = strings.TrimSpace(max)
	if min == "" || max == "" {
		return InactiveRange()
	}

	return ReleaseRange{kind: rangeActive, min: min, max: max}
}

func InactiveRange() ReleaseRange {
	return ReleaseRange{}
}

func (r ReleaseRange) Active() bool {
	return r.kind == rangeActive
}

// Bounds returns the release ids bounding the range. ok is false for inactive ranges.
func (r ReleaseRange) Bounds() (min, max string, ok bool) {
	if r.kind != rangeActive {
		return "", "", false
	}

	return r.min, r.max, true
}

func (r ReleaseRange) String() string {
	if !r.Active() {
		return "inactive"
	}

	return fmt.Sprintf("%s..%s", r.min, r.max)
}

type RuntimeConfig struct {
	Path      string
	Label     string
	Version   string
	Range     ReleaseRange
	HeapMaxMB int
	HeapMinMB int
	ExtraArgs string
}

func NewRuntimeConfig(path string) RuntimeConfig {
	return RuntimeConfig{
		Path:      path,
		Label:     DefaultRuntimeLabel,
		Version:   RuntimeVersionUnset,
		HeapMaxMB: DefaultHeapMaxMB,
		HeapMinMB: DefaultHeapMinMB,
	}
}

func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("path is required")
	}
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("label is required")
	}
	if c.HeapMaxMB <= 0 || c.HeapMinMB <= 0 {
		return fmt.Errorf("heap sizes must be positive")
	}
	if c.HeapMinMB > c.HeapMaxMB {
		return fmt.Errorf("minimum heap %dM exceeds maximum heap %dM", c.HeapMinMB, c.HeapMaxMB)
	}

	return nil
}

// JVMArgs returns the heap flags followed by the whitespace-split extra args.
func (c RuntimeConfig) JVMArgs() []string {
	args := []string{
		fmt.Sprintf("-Xmx%dM", c.HeapMaxMB),
		fmt.Sprintf("-Xms%dM", c.HeapMinMB),
	}

	return append(args, strings.Fields(c.ExtraArgs)...)
}
