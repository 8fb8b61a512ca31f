/*
Package ports defines the driven ports (interfaces) of the optimizer.

These interfaces decouple the colony from external implementations, allowing
it to work with various graph sources, fitness models and result backends.

# Key Interfaces

  - GraphLoader: builds the canonical dialogue graph (flow files, Loam, memory).
  - FitnessOracle: scores a candidate graph; higher is better.
  - ResultStore: persists run results (memory, Redis).
*/
package ports
