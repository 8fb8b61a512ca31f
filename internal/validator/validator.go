package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/pkg/domain"
)

// Severity grades an Issue.
type Severity string

const (
	// SeverityError makes the flow unusable for optimization.
	SeverityError Severity = "error"
	// SeverityWarning is reported but does not fail validation.
	SeverityWarning Severity = "warning"
)

// Issue is one finding about a flow.
type Issue struct {
	Severity Severity `json:"severity"`
	NodeID   string   `json:"node_id,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.NodeID == "" {
		return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.NodeID, i.Message)
}

// Report summarizes the structure of a flow.
type Report struct {
	Root        string                  `json:"root"`
	Nodes       int                     `json:"nodes"`
	Edges       int                     `json:"edges"`
	Unreachable []string                `json:"unreachable,omitempty"`
	DeadEnds    []string                `json:"dead_ends,omitempty"`
	ActionSpace domain.ActionSpaceStats `json:"action_space"`
	Issues      []Issue                 `json:"issues,omitempty"`
}

// HasErrors reports whether any issue has error severity.
func (r *Report) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidationError carries the error-level issues of a flow.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Issues), strings.Join(lines, "\n- "))
}

// Inspect checks g and the action space derived from it with opts.
//
// Unreachable states are ignored by the optimizer and reported as warnings, as are
// reachable states without outgoing transitions and unlabelled transitions (which can
// never serve as the label of a new edge). An empty action space is an error.
func Inspect(g *domain.Graph, opts ...actionspace.Option) *Report {
	r := &Report{
		Root:  g.Root(),
		Nodes: g.NumNodes(),
		Edges: g.NumEdges(),
	}

	if g.IsEmpty() {
		r.Issues = append(r.Issues, Issue{Severity: SeverityError, Message: "flow has no states"})
		return r
	}

	reachable := g.Reachable(g.Root())
	for _, id := range g.Nodes() {
		if !reachable[id] {
			r.Unreachable = append(r.Unreachable, id)
			r.Issues = append(r.Issues, Issue{Severity: SeverityWarning, NodeID: id, Message: "unreachable from root"})
			continue
		}
		if len(g.Successors(id)) == 0 {
			r.DeadEnds = append(r.DeadEnds, id)
		}
	}

	for _, e := range g.Edges() {
		if e.Label == "" {
			r.Issues = append(r.Issues, Issue{
				Severity: SeverityWarning,
				NodeID:   e.From,
				Message:  fmt.Sprintf("transition to %s has no label", e.To),
			})
		}
	}

	space, err := actionspace.Build(g, opts...)
	switch {
	case errors.Is(err, domain.ErrEmptyActionSpace):
		r.Issues = append(r.Issues, Issue{Severity: SeverityError, NodeID: g.Root(), Message: "no legal edit: the root has no reachable transitions"})
	case err != nil:
		r.Issues = append(r.Issues, Issue{Severity: SeverityError, Message: err.Error()})
	default:
		r.ActionSpace = space.Stats()
	}

	return r
}

// ValidateGraph returns a *ValidationError when g cannot be optimized.
func ValidateGraph(g *domain.Graph, opts ...actionspace.Option) error {
	report := Inspect(g, opts...)
	var errs []Issue
	for _, i := range report.Issues {
		if i.Severity == SeverityError {
			errs = append(errs, i)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Issues: errs}
	}
	return nil
}
