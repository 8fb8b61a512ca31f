/*
Package colony runs Ant Colony Optimization over an action graph.

Each iteration releases a fixed number of ants from the Start node. An ant walks up
to its budget of actions, choosing edges by pheromone intensity (or uniformly while
exploring), and its route is replayed as an edit sequence on a clone of the canonical
dialogue graph. The fitness oracle scores the result, the best routes deposit
pheromone, and the whole trail evaporates before the next iteration.

Ants of one iteration run in parallel and only read the pheromone store. Deposits
and evaporation happen afterwards on the coordinating goroutine.
*/
package colony
