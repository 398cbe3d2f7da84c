package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat decodes a JSON value that may be a number or a quoted number.
// Both forms appear in circulating systems.json files.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flex float: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("flex float: parse %q: %w", s, err)
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("flex float: %w", err)
	}
	*f = FlexFloat(v)
	return nil
}

// DistanceEntry is one recorded distance from a star to a named system.
type DistanceEntry struct {
	System   string    `json:"system"`
	Distance FlexFloat `json:"distance"`
}

// Star is a single catalog entry: a named system with a coordinate and the
// distance measurements used to derive or verify that coordinate.
// Calculated marks coordinates produced by the solver rather than taken
// from an authoritative source. Entries awaiting a solution carry distances
// but no coordinate yet; located distinguishes that from a star at the
// origin.
type Star struct {
	Name       string          `json:"name"`
	X          FlexFloat       `json:"x"`
	Y          FlexFloat       `json:"y"`
	Z          FlexFloat       `json:"z"`
	Calculated bool            `json:"calculated,omitempty"`
	Distances  []DistanceEntry `json:"distances,omitempty"`

	located bool
}

func (s *Star) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       string          `json:"name"`
		X          *FlexFloat      `json:"x"`
		Y          *FlexFloat      `json:"y"`
		Z          *FlexFloat      `json:"z"`
		Calculated bool            `json:"calculated"`
		Distances  []DistanceEntry `json:"distances"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Name = raw.Name
	s.Calculated = raw.Calculated
	s.Distances = raw.Distances
	if raw.X != nil && raw.Y != nil && raw.Z != nil {
		s.X, s.Y, s.Z = *raw.X, *raw.Y, *raw.Z
		s.located = true
	}
	return nil
}

// HasLocation reports whether the star has a recorded coordinate.
func (s *Star) HasLocation() bool {
	return s.located
}

// Location returns the star's recorded coordinate.
func (s *Star) Location() Vector {
	return Vector{X: float64(s.X), Y: float64(s.Y), Z: float64(s.Z)}
}

// SetLocation replaces the star's recorded coordinate.
func (s *Star) SetLocation(v Vector) {
	s.X = FlexFloat(v.X)
	s.Y = FlexFloat(v.Y)
	s.Z = FlexFloat(v.Z)
	s.located = true
}
