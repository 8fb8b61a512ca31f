/*
Package actionspace derives the search space of the colony from a dialogue graph.

Every legal edit of the source graph becomes a node of an action graph. The action
graph is complete: any action may follow any other, and a synthetic Start node leads
to every action. Edges are implicit, so an action graph over N actions costs O(N)
memory even though it has N² edges.
*/
package actionspace
