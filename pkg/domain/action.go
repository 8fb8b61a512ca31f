package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// ActionKind enumerates the graph edits the optimizer can perform.
type ActionKind uint8

const (
	// ActionRemoveNode deletes a state and its incident transitions.
	ActionRemoveNode ActionKind = iota + 1
	// ActionRemoveEdge deletes a transition.
	ActionRemoveEdge
	// ActionAddEdge inserts a labelled transition.
	ActionAddEdge
)

// Token prefixes of the canonical action encoding.
const (
	TokenRemoveNode = "REMOVE_NODE"
	TokenRemoveEdge = "REMOVE_EDGE"
	TokenAddEdge    = "ADD_EDGE"
)

func (k ActionKind) String() string {
	switch k {
	case ActionRemoveNode:
		return TokenRemoveNode
	case ActionRemoveEdge:
		return TokenRemoveEdge
	case ActionAddEdge:
		return TokenAddEdge
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// Action is one atomic graph edit.
// RemoveNode uses Src; RemoveEdge uses Src and Dst; AddEdge uses all three fields.
type Action struct {
	Kind  ActionKind
	Src   string
	Dst   string
	Label string
}

// RemoveNode builds a node removal.
func RemoveNode(id string) Action {
	return Action{Kind: ActionRemoveNode, Src: id}
}

// RemoveEdge builds an edge removal.
func RemoveEdge(from, to string) Action {
	return Action{Kind: ActionRemoveEdge, Src: from, Dst: to}
}

// AddEdge builds an edge insertion.
func AddEdge(from, to, label string) Action {
	return Action{Kind: ActionAddEdge, Src: from, Dst: to, Label: label}
}

// String returns the canonical token, e.g. "ADD_EDGE a b Go back".
func (a Action) String() string {
	switch a.Kind {
	case ActionRemoveNode:
		return TokenRemoveNode + " " + a.Src
	case ActionRemoveEdge:
		return TokenRemoveEdge + " " + a.Src + " " + a.Dst
	case ActionAddEdge:
		return TokenAddEdge + " " + a.Src + " " + a.Dst + " " + a.Label
	default:
		return a.Kind.String()
	}
}

// Validate checks that the action can be encoded as a token and decoded back.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionRemoveNode:
		return validateIDs(a, a.Src)
	case ActionRemoveEdge:
		return validateIDs(a, a.Src, a.Dst)
	case ActionAddEdge:
		if err := validateIDs(a, a.Src, a.Dst); err != nil {
			return err
		}
		if a.Label == "" || strings.ContainsAny(a.Label, "\r\n") {
			return fmt.Errorf("%w: %q: label must be a non-empty single line", ErrInvalidActionToken, a.String())
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidActionToken, uint8(a.Kind))
	}
}

func validateIDs(a Action, ids ...string) error {
	for _, id := range ids {
		if !ValidNodeID(id) {
			return fmt.Errorf("%w: %q: invalid node id %q", ErrInvalidActionToken, a.String(), id)
		}
	}
	return nil
}

// ValidNodeID reports whether id can appear in an action token: non-empty and
// free of Unicode whitespace. Loaders reject other ids up front.
func ValidNodeID(id string) bool {
	if id == "" {
		return false
	}
	return strings.IndexFunc(id, unicode.IsSpace) < 0
}

// Apply performs the edit on g in place.
func (a Action) Apply(g *Graph) error {
	switch a.Kind {
	case ActionRemoveNode:
		return g.RemoveNode(a.Src)
	case ActionRemoveEdge:
		return g.RemoveEdge(a.Src, a.Dst)
	case ActionAddEdge:
		return g.AddEdge(a.Src, a.Dst, a.Label)
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidActionToken, uint8(a.Kind))
	}
}

// ParseAction decodes a canonical token.
func ParseAction(token string) (Action, error) {
	invalid := fmt.Errorf("%w: %q", ErrInvalidActionToken, token)

	kind, rest, ok := strings.Cut(token, " ")
	if !ok {
		return Action{}, invalid
	}

	var a Action
	switch kind {
	case TokenRemoveNode:
		a = RemoveNode(rest)
	case TokenRemoveEdge:
		parts := strings.Split(rest, " ")
		if len(parts) != 2 {
			return Action{}, invalid
		}
		a = RemoveEdge(parts[0], parts[1])
	case TokenAddEdge:
		parts := strings.SplitN(rest, " ", 3)
		if len(parts) != 3 {
			return Action{}, invalid
		}
		a = AddEdge(parts[0], parts[1], parts[2])
	default:
		return Action{}, invalid
	}

	if err := a.Validate(); err != nil {
		return Action{}, invalid
	}
	return a, nil
}

// MarshalText encodes the action as its canonical token.
func (a Action) MarshalText() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes a canonical token.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseSequence decodes an ordered list of tokens.
func ParseSequence(tokens []string) ([]Action, error) {
	seq := make([]Action, 0, len(tokens))
	for i, tok := range tokens {
		a, err := ParseAction(tok)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		seq = append(seq, a)
	}
	return seq, nil
}

// Tokens encodes an ordered list of actions.
func Tokens(seq []Action) []string {
	tokens := make([]string, len(seq))
	for i, a := range seq {
		tokens[i] = a.String()
	}
	return tokens
}
