package domain

import "errors"

// ErrNotFound is returned when an edit targets a node or edge that does not exist.
// It is expected during search and is contained to the candidate being evaluated.
var ErrNotFound = errors.New("not found")

// ErrRootRemoval is returned when an edit tries to remove the root state.
var ErrRootRemoval = errors.New("root node cannot be removed")

// ErrInvalidActionToken is returned when an action token cannot be decoded or an
// action cannot be encoded.
var ErrInvalidActionToken = errors.New("invalid action token")

// ErrOracleFailure is returned when the fitness oracle cannot score a graph.
var ErrOracleFailure = errors.New("fitness oracle failure")

// ErrEmptyActionSpace is returned when a graph yields no legal edit action.
var ErrEmptyActionSpace = errors.New("empty action space")

// ErrRunNotFound is returned when a run ID cannot be found in the result store.
var ErrRunNotFound = errors.New("run not found")
