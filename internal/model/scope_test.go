package model

import "testing"

func TestScopeOf(t *testing.T) {
	tests := []struct {
		id   RoutineID
		want Scope
	}{
		{0x0000, ScopeGlobal},
		{0x0042, ScopeGlobal},
		{0x00FF, ScopeGlobal},
		{0x0100, ScopeSemiGlobal},
		{0x0ABC, ScopeSemiGlobal},
		{0x0FFF, ScopeSemiGlobal},
		{0x1000, ScopeObjectLocal},
		{0x8000, ScopeObjectLocal},
		{0xFFFF, ScopeObjectLocal},
	}

	for _, tt := range tests {
		if got := ScopeOf(tt.id); got != tt.want {
			t.Errorf("ScopeOf(%#04x) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestScope_Contains(t *testing.T) {
	if !ScopeGlobal.Contains(0x00FF) {
		t.Error("ScopeGlobal should contain 0x00FF")
	}
	if ScopeGlobal.Contains(0x0100) {
		t.Error("ScopeGlobal should not contain 0x0100")
	}
	if !ScopeObjectLocal.Contains(0x1000) {
		t.Error("ScopeObjectLocal should contain 0x1000")
	}
	if ScopeSemiGlobal.Contains(0x1000) {
		t.Error("ScopeSemiGlobal should not contain 0x1000")
	}
}
