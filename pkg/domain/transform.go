package domain

import "fmt"

// TransformError reports the action that aborted a Transform.
type TransformError struct {
	Index  int
	Action Action
	Err    error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index, e.Action, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// Transform applies seq to a clone of g, in order.
//
// The first failing action aborts the sequence. In that case the returned graph is
// empty (the worst possible candidate) and the error is a *TransformError.
// g itself is never modified.
func Transform(g *Graph, seq []Action) (*Graph, error) {
	work := g.Clone()
	for i, a := range seq {
		if err := a.Apply(work); err != nil {
			return EmptyGraph(), &TransformError{Index: i, Action: a, Err: err}
		}
	}
	return work, nil
}
