package domain

// Outcome is the result of one convergence attempt. Changed is true iff a
// mutating remote call actually executed and succeeded. Info is the
// projected view of the resource after the attempt; nil after a delete or
// an absent no-op.
type Outcome struct {
	Changed bool
	Info    map[string]any
}

// BatchOutcome aggregates per-name outcomes in input order. Changed is the
// OR across all entries; Names and Outcomes correlate positionally with the
// requested name list.
type BatchOutcome struct {
	Changed  bool
	Names    []string
	Outcomes []Outcome
}

// ConvergenceReport is the caller-facing summary handed to reporters.
type ConvergenceReport struct {
	Kind    ResourceKind
	State   DesiredState
	Zone    string
	Name    string
	Names   []string
	Changed bool
	Items   []map[string]any
}
