package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Periods maps named scoring periods (calendar months) to the
// gameweeks they contain. Loaded from periods.yaml:
//
//	periods:
//	  august: [1, 2, 3]
//	  september: [4, 5, 6, 7]
type Periods struct {
	Periods map[string][]int `yaml:"periods"`
}

func LoadPeriods(path string) (Periods, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Periods{}, fmt.Errorf("read periods: %w", err)
	}

	var p Periods
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Periods{}, fmt.Errorf("parse periods: %w", err)
	}
	return p, nil
}

// Gameweeks returns the gameweek set for a named period.
func (p Periods) Gameweeks(name string) ([]int, bool) {
	gws, ok := p.Periods[name]
	return gws, ok
}

// Containing finds the period a gameweek belongs to. Period names are
// checked in sorted order so overlapping definitions resolve
// deterministically.
func (p Periods) Containing(gw int) (string, []int, bool) {
	names := make([]string, 0, len(p.Periods))
	for name := range p.Periods {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, g := range p.Periods[name] {
			if g == gw {
				return name, p.Periods[name], true
			}
		}
	}
	return "", nil, false
}
