package model

// ExitClass describes how an instruction's outcome is resolved during
// static simulation.
type ExitClass int

const (
	// ExitEither means the instruction may take either branch; simulation
	// follows the true branch and records the step as assumed.
	ExitEither ExitClass = iota
	// ExitTrue means the instruction always succeeds.
	ExitTrue
	// ExitFalse means the instruction always fails.
	ExitFalse
)

// FindingKind categorizes a structural problem discovered by analysis.
type FindingKind string

const (
	// FindingBadBranch marks a branch target that is neither a sentinel nor
	// a valid instruction index.
	FindingBadBranch FindingKind = "bad-branch"
	// FindingUnreachable marks an instruction with no path from the entry.
	FindingUnreachable FindingKind = "unreachable"
	// FindingBudgetExhausted marks a simulation cut off by the step budget.
	FindingBudgetExhausted FindingKind = "budget-exhausted"
)

// Finding is a structural problem reported as data, never as an error.
type Finding struct {
	Kind        FindingKind
	Instruction int
	Detail      string
}

// Step is one simulated instruction execution.
type Step struct {
	Index       int
	Instruction Instruction
	Exit        ExitClass
	Assumed     bool // exit was ExitEither and the true branch was chosen
	Next        BranchTarget
	Locals      []int16
	Args        []int16
}

// LoopPair records a backward jump: From's resolved successor To satisfies
// To < From.
type LoopPair struct {
	From int
	To   int
}

// Trace is the result of one bounded simulation run plus the derived
// whole-routine analysis sets.
type Trace struct {
	Routine     RoutineID
	Steps       []Step
	Visited     map[int]bool
	Unreachable []int
	Loops       []LoopPair
	Findings    []Finding
	Truncated   bool // step budget exhausted
}
