package model

import "time"

// MutationKind is the closed set of edits the pipeline knows how to gate.
// Each kind carries its policy as data; KindUnregistered is the explicit
// fallback for inputs arriving from configuration or legacy callers.
type MutationKind int

const (
	// KindUnregistered is any kind the pipeline has no policy for.
	KindUnregistered MutationKind = iota
	// KindOperandEdit rewrites bytes inside one instruction's operand block.
	KindOperandEdit
	// KindBranchEdit rewrites an instruction's true/false branch byte.
	KindBranchEdit
	// KindHeaderEdit changes routine metadata (name, arg/local counts).
	KindHeaderEdit
	// KindRoutineClone inserts a copy of a routine under a new identifier.
	KindRoutineClone
	// KindRoutineDelete removes a routine from its container.
	KindRoutineDelete
)

// KindPolicy is the static policy attached to a mutation kind.
type KindPolicy struct {
	Name         string
	Mutable      bool
	BaseRisk     RiskLevel
	NeedsConfirm bool
}

// Policy returns the policy for the kind. The switch is exhaustive over
// the closed enum; anything else falls back to the unregistered policy.
func (k MutationKind) Policy() KindPolicy {
	switch k {
	case KindOperandEdit:
		return KindPolicy{Name: "operand-edit", Mutable: true, BaseRisk: RiskAcceptable}
	case KindBranchEdit:
		return KindPolicy{Name: "branch-edit", Mutable: true, BaseRisk: RiskCautionary}
	case KindHeaderEdit:
		return KindPolicy{Name: "header-edit", Mutable: true, BaseRisk: RiskAcceptable}
	case KindRoutineClone:
		return KindPolicy{Name: "routine-clone", Mutable: true, BaseRisk: RiskAcceptable}
	case KindRoutineDelete:
		return KindPolicy{Name: "routine-delete", Mutable: true, BaseRisk: RiskCautionary, NeedsConfirm: true}
	case KindUnregistered:
	}

	return KindPolicy{Name: "unregistered", Mutable: false, BaseRisk: RiskBlocking}
}

func (k MutationKind) String() string {
	return k.Policy().Name
}

// RiskLevel is the safety oracle's classification of a proposed change.
type RiskLevel int

const (
	// RiskAcceptable changes may proceed in any writable mode.
	RiskAcceptable RiskLevel = iota
	// RiskCautionary changes proceed but the audit records a warning.
	RiskCautionary
	// RiskBlocking changes are rejected unconditionally.
	RiskBlocking
)

func (r RiskLevel) String() string {
	switch r {
	case RiskCautionary:
		return "cautionary"
	case RiskBlocking:
		return "blocking"
	default:
		return "acceptable"
	}
}

// Diff is one field-level change carried by a request: machine-checkable
// location and old/new bytes plus human-readable renderings for preview.
// Instruction and Offset locate operand-level edits; both are -1 for
// routine-level changes (clone, delete, header edits).
type Diff struct {
	Path        string // e.g. "routine[0x1001].instr[3].operand[0:2]"
	Instruction int
	Offset      int
	Old         []byte
	New         []byte
	OldText     string
	NewText     string
}

// Request proposes one mutation against a target routine.
type Request struct {
	Kind   MutationKind
	Target RoutineID
	File   string
	Diffs  []Diff
	Reason string
}

// Outcome is the closed result taxonomy of a propose call.
type Outcome string

const (
	// OutcomeSuccess means the change was applied and audited.
	OutcomeSuccess Outcome = "success"
	// OutcomeRejectedSafety means the safety oracle blocked the change.
	OutcomeRejectedSafety Outcome = "rejected-for-safety"
	// OutcomeRejectedValidation means a validator rejected the change.
	OutcomeRejectedValidation Outcome = "rejected-by-validation"
	// OutcomeRejectedUser means the operator discarded a pending change.
	OutcomeRejectedUser Outcome = "rejected-by-user"
	// OutcomePreviewOnly means the change was queued without touching data.
	OutcomePreviewOnly Outcome = "preview-only"
)

// Audit is the immutable record appended for every propose call,
// regardless of outcome. Reason is the proposer's stated reason; Note
// carries the risk warning or the specific rejection detail.
type Audit struct {
	Target    RoutineID    `json:"target"`
	File      string       `json:"file"`
	Kind      MutationKind `json:"kind"`
	Outcome   Outcome      `json:"outcome"`
	Reason    string       `json:"reason"`
	Note      string       `json:"note,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}
