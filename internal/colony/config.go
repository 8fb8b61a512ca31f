package colony

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/flowant/internal/actionspace"
)

// Config holds the tunables of a run. It is copied into the colony and never
// modified afterwards.
type Config struct {
	Ants       int
	Iterations int
	Budget     int

	DistanceThreshold int
	GoBackLabels      []string
	BaseWeight        float64

	Exploration   float64
	Selection     Selection
	Reinforcement Reinforcement
	Evaporation   float64
	Epsilon       float64

	// Seed 0 picks a time based seed.
	Seed          uint64
	Workers       int
	OracleTimeout time.Duration
	// Patience > 0 stops the run after that many iterations without improvement.
	Patience int
}

// DefaultConfig returns the tunables used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Ants:              10,
		Iterations:        50,
		Budget:            5,
		DistanceThreshold: actionspace.DefaultDistanceThreshold,
		GoBackLabels:      append([]string(nil), actionspace.DefaultGoBackLabels...),
		BaseWeight:        1,
		Exploration:       0.5,
		Selection:         Additive{Base: 0.01},
		Reinforcement:     TopFraction{Fraction: 0.1, Normalize: true},
		Evaporation:       0.4,
		Epsilon:           1e-4,
		Workers:           1,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Ants < 1 {
		errs = append(errs, fmt.Errorf("ants must be positive, got %d", c.Ants))
	}
	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", c.Iterations))
	}
	if c.Budget < 1 {
		errs = append(errs, fmt.Errorf("budget must be positive, got %d", c.Budget))
	}
	if c.DistanceThreshold < 1 {
		errs = append(errs, fmt.Errorf("distance threshold must be positive, got %d", c.DistanceThreshold))
	}
	if c.BaseWeight <= 0 {
		errs = append(errs, fmt.Errorf("base weight must be positive, got %v", c.BaseWeight))
	}
	if c.Exploration < 0 || c.Exploration > 1 {
		errs = append(errs, fmt.Errorf("exploration must be in [0, 1], got %v", c.Exploration))
	}
	if c.Selection == nil {
		errs = append(errs, errors.New("selection policy is required"))
	} else if v, ok := c.Selection.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Reinforcement == nil {
		errs = append(errs, errors.New("reinforcement policy is required"))
	} else if v, ok := c.Reinforcement.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if !(c.Evaporation > 0 && c.Evaporation < 1) {
		errs = append(errs, fmt.Errorf("evaporation must be in (0, 1), got %v", c.Evaporation))
	}
	if c.Epsilon < 0 {
		errs = append(errs, fmt.Errorf("epsilon must not be negative, got %v", c.Epsilon))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.OracleTimeout < 0 {
		errs = append(errs, fmt.Errorf("oracle timeout must not be negative, got %v", c.OracleTimeout))
	}
	if c.Patience < 0 {
		errs = append(errs, fmt.Errorf("patience must not be negative, got %d", c.Patience))
	}
	return errors.Join(errs...)
}
