// Package config loads run settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/internal/colony"
	"gopkg.in/yaml.v3"
)

// Fitness kinds understood by the CLI.
const (
	FitnessReachability = "reachability"
	FitnessSimilarity   = "similarity"
	FitnessWeighted     = "weighted"
)

// Store kinds understood by the CLI.
const (
	StoreNone   = ""
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Reinforcement selects which outcomes deposit pheromone.
type Reinforcement struct {
	TopFraction float64 `yaml:"top_fraction" json:"top_fraction"`
	Normalize   bool    `yaml:"normalize" json:"normalize"`
}

// Fitness selects the reference oracle the CLI scores candidates with.
type Fitness struct {
	Kind string `yaml:"kind" json:"kind"`
	// Reference is the flow file candidates are compared against (similarity, weighted).
	Reference string `yaml:"reference" json:"reference"`
	// Alpha weighs reachability against similarity (weighted).
	Alpha float64 `yaml:"alpha" json:"alpha"`
}

// Store selects where run results are kept.
type Store struct {
	Kind     string `yaml:"kind" json:"kind"`
	Address  string `yaml:"address" json:"address"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	TTL      string `yaml:"ttl" json:"ttl"`
}

// Config is the on-disk shape of a run configuration.
type Config struct {
	Ants              int           `yaml:"ants" json:"ants"`
	Iterations        int           `yaml:"iterations" json:"iterations"`
	Budget            int           `yaml:"budget" json:"budget"`
	DistanceThreshold int           `yaml:"distance_threshold" json:"distance_threshold"`
	Exploration       float64       `yaml:"exploration" json:"exploration"`
	BaseWeight        float64       `yaml:"base_weight" json:"base_weight"`
	PheromoneBase     float64       `yaml:"pheromone_base" json:"pheromone_base"`
	Alpha             float64       `yaml:"alpha" json:"alpha"`
	Beta              float64       `yaml:"beta" json:"beta"`
	Selection         string        `yaml:"selection" json:"selection"`
	Evaporation       float64       `yaml:"evaporation" json:"evaporation"`
	Epsilon           float64       `yaml:"epsilon" json:"epsilon"`
	Reinforcement     Reinforcement `yaml:"reinforcement" json:"reinforcement"`
	Seed              uint64        `yaml:"seed" json:"seed"`
	Workers           int           `yaml:"workers" json:"workers"`
	OracleTimeout     string        `yaml:"oracle_timeout" json:"oracle_timeout"`
	Patience          int           `yaml:"patience" json:"patience"`
	GoBackLabels      []string      `yaml:"go_back_labels" json:"go_back_labels"`
	Fitness           Fitness       `yaml:"fitness" json:"fitness"`
	Store             Store         `yaml:"store" json:"store"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ants:              10,
		Iterations:        50,
		Budget:            5,
		DistanceThreshold: actionspace.DefaultDistanceThreshold,
		Exploration:       0.5,
		BaseWeight:        1,
		PheromoneBase:     0.01,
		Alpha:             1,
		Beta:              2,
		Selection:         colony.SelectionAdditive,
		Evaporation:       0.4,
		Epsilon:           1e-4,
		Reinforcement:     Reinforcement{TopFraction: 0.1, Normalize: true},
		Workers:           1,
		OracleTimeout:     "0",
		GoBackLabels:      append([]string(nil), actionspace.DefaultGoBackLabels...),
		Fitness:           Fitness{Kind: FitnessReachability, Alpha: 0.5},
		Store:             Store{Prefix: "flowant:", TTL: "0"},
	}
}

// Load reads a configuration file (YAML or JSON, by extension) over the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Colony(); err != nil {
		errs = append(errs, err)
	}
	switch c.Fitness.Kind {
	case FitnessReachability:
	case FitnessSimilarity, FitnessWeighted:
		if c.Fitness.Reference == "" {
			errs = append(errs, fmt.Errorf("fitness %q needs a reference flow", c.Fitness.Kind))
		}
		if c.Fitness.Alpha < 0 || c.Fitness.Alpha > 1 {
			errs = append(errs, fmt.Errorf("fitness alpha must be in [0, 1], got %v", c.Fitness.Alpha))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown fitness kind %q", c.Fitness.Kind))
	}
	switch c.Store.Kind {
	case StoreNone, StoreMemory:
	case StoreRedis:
		if c.Store.Address == "" {
			errs = append(errs, errors.New("redis store needs an address"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store kind %q", c.Store.Kind))
	}
	if _, err := c.StoreTTL(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// StoreTTL parses the result retention period. Zero keeps results forever.
func (c Config) StoreTTL() (time.Duration, error) {
	return parseDuration("store ttl", c.Store.TTL)
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// Colony converts the file settings into the colony's tunables.
func (c Config) Colony() (colony.Config, error) {
	timeout, err := parseDuration("oracle timeout", c.OracleTimeout)
	if err != nil {
		return colony.Config{}, err
	}
	sel, err := colony.NewSelection(c.Selection, c.PheromoneBase, c.Alpha, c.Beta)
	if err != nil {
		return colony.Config{}, err
	}

	cc := colony.Config{
		Ants:              c.Ants,
		Iterations:        c.Iterations,
		Budget:            c.Budget,
		DistanceThreshold: c.DistanceThreshold,
		GoBackLabels:      append([]string(nil), c.GoBackLabels...),
		BaseWeight:        c.BaseWeight,
		Exploration:       c.Exploration,
		Selection:         sel,
		Reinforcement: colony.TopFraction{
			Fraction:  c.Reinforcement.TopFraction,
			Normalize: c.Reinforcement.Normalize,
		},
		Evaporation:   c.Evaporation,
		Epsilon:       c.Epsilon,
		Seed:          c.Seed,
		Workers:       c.Workers,
		OracleTimeout: timeout,
		Patience:      c.Patience,
	}
	if err := cc.Validate(); err != nil {
		return colony.Config{}, err
	}
	return cc, nil
}
