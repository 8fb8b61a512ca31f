/*
Package flowant optimizes dialogue flows with Ant Colony Optimization.

A dialogue flow is a directed graph: nodes are states of a conversation, edges are
labelled transitions (the buttons a user can press). Flowant derives every legal
single-step edit of that graph (remove a node, remove an edge, add an edge between
nearby nodes), then lets a colony of ants walk sequences of those edits. Each
sequence is applied to a copy of the flow and scored by a fitness oracle supplied
by the caller. Sequences that score well leave pheromone behind and are more
likely to be walked again; pheromone evaporates between iterations.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/flowant"
		"github.com/aretw0/flowant/pkg/fitness"
	)

	func main() {
		// A directory is read as a Loam repository, a file as a flow document.
		loader, err := flowant.Open("./support-bot.json", "")
		if err != nil {
			log.Fatal(err)
		}

		opt, err := flowant.New(fitness.Reachability())
		if err != nil {
			log.Fatal(err)
		}

		result, err := opt.OptimizeFrom(context.Background(), loader)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(result.Best.Tokens(), result.Best.Fitness)
	}

# Edits

Edits are exchanged as tokens: "REMOVE_NODE x", "REMOVE_EDGE x y" and
"ADD_EDGE x y label". See domain.ParseAction.

# Observability

Runs report progress through domain.LifecycleHooks, log/slog and, when a
prometheus.Registerer is supplied, Prometheus metrics.
*/
package flowant
