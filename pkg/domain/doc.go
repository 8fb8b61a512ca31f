/*
Package domain contains the core model of the optimizer.

It defines the dialogue-flow graph, the edit actions the colony searches over
and the records a run produces. This package is kept pure and free of I/O.

# Key Entities

  - Graph: a directed, labelled dialogue flow with O(1) copy-on-write clones.
  - Action: one atomic edit (REMOVE_NODE, REMOVE_EDGE, ADD_EDGE) with a canonical text token.
  - Transform: applies an action sequence to a clone of a graph, all or nothing.
  - Outcome / Result: the scored route of an ant and the record of a whole run.
  - LifecycleHooks: callbacks fired while a colony runs.
*/
package domain
