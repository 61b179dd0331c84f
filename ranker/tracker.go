/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package ranker replays match outcomes through a Rater and keeps a running
// rating and win/loss record for every competitor it has seen.
package ranker

import (
	"fmt"

	"github.com/mikeb26/arenarank/internal"
	"github.com/mikeb26/arenarank/match"
)

// Tally is a competitor's cumulative record.
type Tally struct {
	Wins   int
	Losses int
}

// a competitor's rating and tally always live together
type entry struct {
	rating Rating
	tally  Tally
}

// Tracker is not safe for concurrent use. Ratings depend on the order in
// which matches are applied, so callers apply them in record order.
type Tracker struct {
	rater   Rater
	entries map[string]*entry
}

func NewTracker(r Rater) *Tracker {
	return &Tracker{
		rater:   r,
		entries: make(map[string]*entry),
	}
}

// lookup returns the entry for name, creating it with the rater's default
// prior and an empty tally on first use.
func (t *Tracker) lookup(name string) *entry {
	e, ok := t.entries[name]
	if !ok {
		e = &entry{rating: t.rater.Default()}
		t.entries[name] = e
		internal.Debugf("ranker: new competitor %q", name)
	}
	return e
}

// Update applies one match: the winner is credited a win per member, every
// member of every losing team a loss, and all teams are rated together as a
// single ranked outcome with the winner first.
func (t *Tracker) Update(m *match.Match) error {
	teams := m.Teams()

	before := make([][]Rating, len(teams))
	for i, team := range teams {
		before[i] = make([]Rating, len(team))
		for j, name := range team {
			before[i][j] = t.lookup(name).rating
		}
	}

	after, err := t.rater.Rate(before)
	if err != nil {
		return fmt.Errorf("rating line %d: %w", m.Line, err)
	}
	if len(after) != len(before) {
		return fmt.Errorf("rating line %d: rater returned %d teams, expected %d",
			m.Line, len(after), len(before))
	}
	for i := range before {
		if len(after[i]) != len(before[i]) {
			return fmt.Errorf("rating line %d: rater returned %d ratings for team %d, expected %d",
				m.Line, len(after[i]), i, len(before[i]))
		}
	}

	for _, name := range m.Winner {
		t.lookup(name).tally.Wins++
	}
	for _, team := range m.Losers {
		for _, name := range team {
			t.lookup(name).tally.Losses++
		}
	}

	for i, team := range teams {
		for j, name := range team {
			t.lookup(name).rating = after[i][j]
		}
	}

	return nil
}

// Apply updates the tracker with each match in order, stopping at the first
// failure.
func (t *Tracker) Apply(matches []*match.Match) error {
	for _, m := range matches {
		if err := t.Update(m); err != nil {
			return err
		}
	}
	return nil
}

// Rating returns the current rating for name without creating it.
func (t *Tracker) Rating(name string) (Rating, bool) {
	e, ok := t.entries[name]
	if !ok {
		return Rating{}, false
	}
	return e.rating, true
}

// Tally returns the current record for name without creating it.
func (t *Tracker) Tally(name string) (Tally, bool) {
	e, ok := t.entries[name]
	if !ok {
		return Tally{}, false
	}
	return e.tally, true
}

func (t *Tracker) Len() int {
	return len(t.entries)
}
