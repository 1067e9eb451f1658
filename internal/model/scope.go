package model

// Scope classifies a routine identifier by its numeric range. Scope is
// always derived from the identifier value, never stored.
type Scope string

const (
	// ScopeGlobal covers identifiers 0x0000-0x00FF, shared by every object.
	ScopeGlobal Scope = "global"
	// ScopeSemiGlobal covers identifiers 0x0100-0x0FFF, shared by an object family.
	ScopeSemiGlobal Scope = "semi-global"
	// ScopeObjectLocal covers identifiers 0x1000-0xFFFF, private to one object.
	ScopeObjectLocal Scope = "object-local"
)

// Scope range bounds (inclusive).
const (
	GlobalMax      RoutineID = 0x00FF
	SemiGlobalMin  RoutineID = 0x0100
	SemiGlobalMax  RoutineID = 0x0FFF
	ObjectLocalMin RoutineID = 0x1000
)

// ScopeOf returns the scope of an identifier. Total: every 16-bit value
// maps to exactly one scope.
func ScopeOf(id RoutineID) Scope {
	switch {
	case id <= GlobalMax:
		return ScopeGlobal
	case id <= SemiGlobalMax:
		return ScopeSemiGlobal
	default:
		return ScopeObjectLocal
	}
}

// Contains reports whether the identifier falls inside the scope's range.
func (s Scope) Contains(id RoutineID) bool {
	return ScopeOf(id) == s
}
