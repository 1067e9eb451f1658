package adapter

import (
	"fmt"

	m "github.com/mouse-blink/simwright/internal/model"
)

// SafetyChecker is the external policy oracle consulted before any
// mutation is considered. The pipeline treats it as opaque: whatever it
// classifies as blocking is rejected unconditionally.
type SafetyChecker interface {
	Check(kind m.MutationKind, target m.RoutineID, file string) (m.RiskLevel, string)
}

type safetyChecker struct{}

// NewSafetyChecker constructs the default policy-table oracle: the kind's
// base risk, escalated one level for targets in shared scope.
func NewSafetyChecker() SafetyChecker {
	return &safetyChecker{}
}

func (s *safetyChecker) Check(kind m.MutationKind, target m.RoutineID, file string) (m.RiskLevel, string) {
	policy := kind.Policy()
	if !policy.Mutable {
		return m.RiskBlocking, fmt.Sprintf("%s mutations are not permitted", policy.Name)
	}

	risk := policy.BaseRisk
	scope := m.ScopeOf(target)

	// Shared-scope routines are reachable from every object in the container.
	if scope != m.ScopeObjectLocal && risk == m.RiskAcceptable {
		risk = m.RiskCautionary
	}

	if kind == m.KindRoutineDelete && scope == m.ScopeGlobal {
		return m.RiskBlocking, fmt.Sprintf("deleting global routine %#04x would orphan every caller in %s", target, file)
	}

	note := ""
	if risk == m.RiskCautionary {
		note = fmt.Sprintf("%s edit touches %s routine %#04x", policy.Name, scope, target)
	}

	return risk, note
}
