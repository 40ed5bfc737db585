package cryst

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// pairParamsFile is the YAML schema for empirical pairwise parameter tables:
//
//	bump_merge:
//	  - {a: Na+, b: Cl-, dist: 2.1}
//	  - {a: O2-, b: O2-, dist: 2.4, can_overlap: true}
//	bond_valence:
//	  - {a: Na+, b: Cl-, ro: 2.15}
//
// Species are resolved by registered name; bump-merge entries default
// can_overlap to true for same-species pairs, false otherwise, matching
// SetBumpMergeDistance.
type pairParamsFile struct {
	BumpMerge []struct {
		A          string  `yaml:"a"`
		B          string  `yaml:"b"`
		Dist       float64 `yaml:"dist"`
		CanOverlap *bool   `yaml:"can_overlap"`
	} `yaml:"bump_merge"`
	BondValence []struct {
		A  string  `yaml:"a"`
		B  string  `yaml:"b"`
		Ro float64 `yaml:"ro"`
	} `yaml:"bond_valence"`
}

// LoadPairParams reads a YAML parameter table and applies every entry.
// Entries already configured are overwritten. On error the structure keeps
// the entries applied before the failure (entries are independent; partial
// application is safe).
func (s *Structure) LoadPairParams(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cryst: reading pair parameters: %w", err)
	}

	var file pairParamsFile
	if err = yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("cryst: parsing pair parameters: %w", err)
	}

	for _, e := range file.BumpMerge {
		a, err := s.FindSpecies(e.A)
		if err != nil {
			return err
		}
		b, err := s.FindSpecies(e.B)
		if err != nil {
			return err
		}
		canOverlap := a == b
		if e.CanOverlap != nil {
			canOverlap = *e.CanOverlap
		}
		if err = s.SetBumpMergeDistanceEx(a, b, e.Dist, canOverlap); err != nil {
			return fmt.Errorf("bump-merge %s/%s: %w", e.A, e.B, err)
		}
	}

	for _, e := range file.BondValence {
		a, err := s.FindSpecies(e.A)
		if err != nil {
			return err
		}
		b, err := s.FindSpecies(e.B)
		if err != nil {
			return err
		}
		if err = s.AddBondValenceRo(a, b, e.Ro); err != nil {
			return fmt.Errorf("bond-valence %s/%s: %w", e.A, e.B, err)
		}
	}

	return nil
}
