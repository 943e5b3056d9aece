package executor

import "strings"

// Flags selects the hardening steps applied to one program execution.
type Flags uint32

const (
	// WaitForCompletion makes the parent block until the child exits.
	// Without it the child is never reaped by this process.
	WaitForCompletion Flags = 1 << iota
	// ReseedRandomness reseeds the PRNG separately in parent and child.
	ReseedRandomness
	// SanitizeDescriptors closes inherited descriptors in the child and
	// guarantees the standard streams are open.
	SanitizeDescriptors
	// DropPrivileges permanently drops setuid/setgid identity in the child.
	DropPrivileges

	// DefaultFlags enables every capability.
	DefaultFlags = WaitForCompletion | ReseedRandomness | SanitizeDescriptors | DropPrivileges
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{WaitForCompletion, "wait"},
	{ReseedRandomness, "reseed"},
	{SanitizeDescriptors, "sanitize"},
	{DropPrivileges, "drop-privileges"},
}

// Has reports whether every bit of o is set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range flagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
