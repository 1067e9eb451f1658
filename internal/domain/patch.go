package domain

import (
	"fmt"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// ScopePatcher applies an identifier map after proving every key belongs
// to the claimed scope. The check runs before any byte is touched: a map
// smuggling a foreign identifier is rejected whole.
type ScopePatcher struct {
	scope   m.Scope
	rewirer Rewirer
}

// NewScopePatcher constructs the patcher for one scope.
func NewScopePatcher(scope m.Scope, rewirer Rewirer) *ScopePatcher {
	return &ScopePatcher{scope: scope, rewirer: rewirer}
}

// Scope returns the scope this patcher validates against.
func (sp *ScopePatcher) Scope() m.Scope { return sp.scope }

// Patch validates the map's keys against the patcher's scope, then
// delegates to the rewirer.
func (sp *ScopePatcher) Patch(c adapter.Container, idmap m.IdentifierMap, pipe Pipeline) ([]RewireResult, []m.Finding, error) {
	if err := sp.checkScope(idmap); err != nil {
		return nil, nil, err
	}

	return sp.rewirer.Rewire(c, idmap, pipe)
}

func (sp *ScopePatcher) checkScope(idmap m.IdentifierMap) error {
	for from := range idmap {
		if !sp.scope.Contains(from) {
			return fmt.Errorf("scope mismatch: %#04x is %s, patcher handles %s", from, m.ScopeOf(from), sp.scope)
		}
	}

	return nil
}

// GlobalPatcher is the global-scope patcher plus override injection:
// shadowing a shared global routine with an object-local clone without
// touching the shared routine itself.
type GlobalPatcher struct {
	*ScopePatcher
	scanner Scanner
}

// NewGlobalPatcher constructs the global-scope patcher.
func NewGlobalPatcher(rewirer Rewirer, scanner Scanner) *GlobalPatcher {
	return &GlobalPatcher{
		ScopePatcher: NewScopePatcher(m.ScopeGlobal, rewirer),
		scanner:      scanner,
	}
}

// InjectOverride clones the global routine under a new object-local
// identifier and rewires the container's own call sites from the global
// to the clone. Both steps go through the pipeline; in preview mode they
// queue without mutating.
func (gp *GlobalPatcher) InjectOverride(c adapter.Container, globalID, localID m.RoutineID, pipe Pipeline) ([]RewireResult, []m.Finding, error) {
	if !m.ScopeGlobal.Contains(globalID) {
		return nil, nil, fmt.Errorf("scope mismatch: %#04x is %s, override source must be global", globalID, m.ScopeOf(globalID))
	}

	if !m.ScopeObjectLocal.Contains(localID) {
		return nil, nil, fmt.Errorf("scope mismatch: %#04x is %s, override clone must be object-local", localID, m.ScopeOf(localID))
	}

	source, ok := c.Routine(globalID)
	if !ok {
		return nil, nil, fmt.Errorf("global routine %#04x not found in %s", globalID, c.Name())
	}

	cloneResult := pipe.Propose(cloneChange(c, source, localID))
	results := []RewireResult{{
		Site:   m.CallSite{Routine: globalID, Instruction: -1},
		NewID:  localID,
		Result: cloneResult,
	}}

	if cloneResult.Outcome != m.OutcomeSuccess && cloneResult.Outcome != m.OutcomePreviewOnly {
		return results, nil, nil
	}

	rewired, findings, err := gp.rewireLocalCallers(c, globalID, localID, pipe)
	if err != nil {
		return results, findings, err
	}

	return append(results, rewired...), findings, nil
}

// rewireLocalCallers rewrites only call sites inside object-local
// routines; global and semi-global callers keep the shared target.
func (gp *GlobalPatcher) rewireLocalCallers(c adapter.Container, globalID, localID m.RoutineID, pipe Pipeline) ([]RewireResult, []m.Finding, error) {
	sites, err := gp.scanner.CallSites(c)
	if err != nil {
		return nil, nil, err
	}

	var results []RewireResult

	for _, site := range sites {
		if site.Target != globalID || !m.ScopeObjectLocal.Contains(site.Routine) {
			continue
		}

		routine, ok := c.Routine(site.Routine)
		if !ok {
			continue
		}

		results = append(results, RewireResult{
			Site:   site,
			NewID:  localID,
			Result: pipe.Propose(rewireChange(c, routine, site, localID)),
		})
	}

	return results, nil, nil
}

// cloneChange builds the pipeline change inserting a copy of source under
// the new identifier.
func cloneChange(c adapter.Container, source *m.Routine, newID m.RoutineID) Change {
	return Change{
		Request: m.Request{
			Kind:   m.KindRoutineClone,
			Target: newID,
			File:   c.Name(),
			Diffs: []m.Diff{{
				Path:        fmt.Sprintf("routine[%#04x]", newID),
				Instruction: -1,
				Offset:      -1,
				OldText:     "(absent)",
				NewText:     fmt.Sprintf("clone of %#04x (%q, %d instructions)", source.ID, source.Name, len(source.Instructions)),
			}},
			Reason: fmt.Sprintf("inject local override of global %#04x", source.ID),
		},
		Apply: func() error {
			clone := source.Clone()
			clone.ID = newID
			c.Put(clone)

			return nil
		},
	}
}
