package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// Mode is the pipeline's write gate, operator-driven and never switched
// automatically.
type Mode int

const (
	// ModeInspect rejects every write attempt outright.
	ModeInspect Mode = iota
	// ModePreview validates and queues changes without touching data.
	ModePreview
	// ModeMutate validates, applies, and audits changes immediately.
	ModeMutate
)

func (md Mode) String() string {
	switch md {
	case ModePreview:
		return "preview"
	case ModeMutate:
		return "mutate"
	default:
		return "inspect"
	}
}

// Change couples a request with the commit routine that applies it. The
// commit routine runs only in mutate mode, after every gate has passed.
type Change struct {
	Request m.Request
	Apply   func() error
}

// Result is the per-request answer a caller must handle: one of the five
// outcomes plus the specific reason when rejected.
type Result struct {
	Outcome m.Outcome
	Detail  string
}

// Validator inspects a request and rejects it with a reason. The chain
// short-circuits on the first rejection.
type Validator func(req m.Request) error

// Hook runs after a successful commit.
type Hook func(req m.Request)

// Pipeline is the single chokepoint through which every binary-affecting
// change is proposed, validated, previewed, and committed. One pipeline,
// one history; the host constructs it and hands it to every caller.
type Pipeline interface {
	Mode() Mode
	SetMode(mode Mode)
	RegisterValidator(v Validator)
	RegisterHook(h Hook)

	// Propose runs the gates and dispatches on mode. Exactly one audit
	// record is appended per call, whatever the outcome.
	Propose(change Change) Result

	// Pending lists changes queued in preview mode.
	Pending() []Change
	// PromoteAll switches to mutate mode and replays every pending change.
	// Items succeed or fail independently; there is no multi-item rollback.
	PromoteAll() []Result
	// DiscardPending drops the queue, auditing each item as user-rejected.
	DiscardPending() int

	History() []m.Audit
	HistoryFor(target m.RoutineID) []m.Audit
}

type pipeline struct {
	mu         sync.Mutex
	mode       Mode
	safety     adapter.SafetyChecker
	validators []Validator
	hooks      []Hook
	pending    []Change
	history    []m.Audit
	now        func() time.Time
}

// NewPipeline constructs a pipeline in inspect mode over the given safety
// oracle.
func NewPipeline(safety adapter.SafetyChecker) Pipeline {
	return &pipeline{
		safety: safety,
		now:    time.Now,
	}
}

func (p *pipeline) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.mode
}

func (p *pipeline) SetMode(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.mode = mode
}

func (p *pipeline) RegisterValidator(v Validator) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.validators = append(p.validators, v)
}

func (p *pipeline) RegisterHook(h Hook) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.hooks = append(p.hooks, h)
}

func (p *pipeline) Propose(change Change) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.propose(change)
}

// propose is the locked core shared by Propose and PromoteAll.
func (p *pipeline) propose(change Change) Result {
	req := change.Request

	risk, note := p.safety.Check(req.Kind, req.Target, req.File)
	if risk == m.RiskBlocking {
		return p.finish(req, m.OutcomeRejectedSafety, note)
	}

	if p.mode == ModeInspect {
		return p.finish(req, m.OutcomeRejectedSafety, "inspect mode: writes are disabled")
	}

	for _, validate := range p.validators {
		if err := validate(req); err != nil {
			return p.finish(req, m.OutcomeRejectedValidation, err.Error())
		}
	}

	if p.mode == ModePreview {
		p.pending = append(p.pending, change)
		return p.finish(req, m.OutcomePreviewOnly, note)
	}

	if err := change.Apply(); err != nil {
		return p.finish(req, m.OutcomeRejectedValidation, fmt.Sprintf("commit failed: %v", err))
	}

	for _, hook := range p.hooks {
		hook(req)
	}

	return p.finish(req, m.OutcomeSuccess, note)
}

// finish appends the audit record and builds the caller's result.
func (p *pipeline) finish(req m.Request, outcome m.Outcome, note string) Result {
	p.history = append(p.history, m.Audit{
		Target:    req.Target,
		File:      req.File,
		Kind:      req.Kind,
		Outcome:   outcome,
		Reason:    req.Reason,
		Note:      note,
		Timestamp: p.now(),
	})

	return Result{Outcome: outcome, Detail: note}
}

func (p *pipeline) Pending() []Change {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]Change(nil), p.pending...)
}

func (p *pipeline) PromoteAll() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	queued := p.pending
	p.pending = nil
	p.mode = ModeMutate

	results := make([]Result, 0, len(queued))
	for _, change := range queued {
		results = append(results, p.propose(change))
	}

	return results
}

func (p *pipeline) DiscardPending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	dropped := len(p.pending)
	for _, change := range p.pending {
		p.finish(change.Request, m.OutcomeRejectedUser, "discarded from pending queue")
	}

	p.pending = nil

	return dropped
}

func (p *pipeline) History() []m.Audit {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]m.Audit(nil), p.history...)
}

func (p *pipeline) HistoryFor(target m.RoutineID) []m.Audit {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []m.Audit

	for _, audit := range p.history {
		if audit.Target == target {
			out = append(out, audit)
		}
	}

	return out
}
