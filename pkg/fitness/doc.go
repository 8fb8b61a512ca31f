// Package fitness provides reference implementations of ports.FitnessOracle and the
// guard the colony wraps every oracle call in.
package fitness
