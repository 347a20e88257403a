package command

import (
	"fmt"
	"strings"
)

// FamilyID identifies a queue family on the native backend.
type FamilyID uint32

// QueueID identifies a queue by its family and its index within the family.
// It is assigned when the queue is created and never changes.
type QueueID struct {
	Family FamilyID
	Index  int
}

// String returns the identifier as "family/index".
func (id QueueID) String() string {
	return fmt.Sprintf("%d/%d", id.Family, id.Index)
}

// Capability describes the kinds of operations a queue family supports.
type Capability uint8

const (
	// CapabilityTransfer supports copy operations.
	CapabilityTransfer Capability = 1 << iota
	// CapabilityCompute supports compute dispatches.
	CapabilityCompute
	// CapabilityGraphics supports draw operations.
	CapabilityGraphics

	// CapabilityGeneral supports every kind of operation.
	CapabilityGeneral = CapabilityTransfer | CapabilityCompute | CapabilityGraphics
)

// Supports reports whether c includes every bit of other.
func (c Capability) Supports(other Capability) bool {
	return c&other == other
}

// String returns a "|"-separated list of capability names.
func (c Capability) String() string {
	if c == 0 {
		return "None"
	}
	var parts []string
	if c&CapabilityTransfer != 0 {
		parts = append(parts, "Transfer")
	}
	if c&CapabilityCompute != 0 {
		parts = append(parts, "Compute")
	}
	if c&CapabilityGraphics != 0 {
		parts = append(parts, "Graphics")
	}
	return strings.Join(parts, "|")
}
