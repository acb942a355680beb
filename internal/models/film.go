// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CinemaEpoch is the date of the first public film screening
// (Lumiere brothers, Paris, 1895-12-28). No film can be released
// on or before this date.
var CinemaEpoch = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Date is a calendar date serialized as "YYYY-MM-DD".
// The like graph and ranking queries only ever need day precision,
// so the time component is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// dateLayout is the wire format for Date values.
const dateLayout = "2006-01-02"

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Mpa is one of the five fixed MPA content classifications (ids 1..5).
type Mpa struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Genre is a film genre from the fixed catalog.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Director identifies a film director.
type Director struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

// Film is the central catalog entity. Rating is the number of active
// like edges and is derived from the like graph on read; it is never
// stored as a mutable counter.
type Film struct {
	ID          int        `json:"id"`
	Title       string     `json:"title" validate:"required,notblank"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate Date       `json:"release_date" validate:"cinemadate"`
	Duration    int        `json:"duration_minutes" validate:"required,gt=0"`
	Rating      int        `json:"rating"`
	Mpa         Mpa        `json:"mpa" validate:"omitempty"`
	Genres      []Genre    `json:"genres"`
	Directors   []Director `json:"directors"`
}

// NormalizeSets deduplicates genres and directors by id and orders
// them ascending, the canonical render order.
func (f *Film) NormalizeSets() {
	f.Genres = dedupeGenres(f.Genres)
	f.Directors = dedupeDirectors(f.Directors)
}

func dedupeGenres(in []Genre) []Genre {
	seen := make(map[int]bool, len(in))
	out := make([]Genre, 0, len(in))
	for _, g := range in {
		if !seen[g.ID] {
			seen[g.ID] = true
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func dedupeDirectors(in []Director) []Director {
	seen := make(map[int]bool, len(in))
	out := make([]Director, 0, len(in))
	for _, d := range in {
		if !seen[d.ID] {
			seen[d.ID] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasGenre reports whether the film's genre set contains genreID.
func (f *Film) HasGenre(genreID int) bool {
	for _, g := range f.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}

// ReleaseYear returns the calendar year of the release date.
func (f *Film) ReleaseYear() int {
	return f.ReleaseDate.Year()
}
