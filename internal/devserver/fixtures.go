package devserver

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/tradebinder/tradebinder/pkg/types"
)

//go:embed seed.yaml
var seedYAML []byte

// FixtureSet is the in-memory dataset the stub marketplace starts with.
// Inventory maps user id to owned product ids.
type FixtureSet struct {
	Users       []types.User        `yaml:"users"`
	Products    []types.Product     `yaml:"products"`
	Collections []types.Collection  `yaml:"collections"`
	Inventory   map[string][]string `yaml:"inventory"`
}

// DefaultFixtures parses the embedded seed data.
func DefaultFixtures() (*FixtureSet, error) {
	fixtures := &FixtureSet{}
	if err := yaml.Unmarshal(seedYAML, fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse seed fixtures: %w", err)
	}
	return fixtures, nil
}
