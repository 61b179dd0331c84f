/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package match turns raw match record lines into winner/loser teams.
//
// A record is a comma separated list of fields. Each field is a team; a team
// with more than one member joins the names with '&'. Blank lines and lines
// starting with '#' carry no match.
//
// Two layouts exist. FormatPlain is canonical: the first field is the winning
// team and every later field is a team it beat. FormatLegacy is the older
// layout where three metadata fields (date first) precede the winner. The
// legacy layout is only used when explicitly requested; it is never guessed.
package match

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikeb26/arenarank/internal"
)

const (
	FieldSep   = ","
	MemberSep  = "&"
	CommentTok = "#"
)

type Format int

const (
	FormatPlain Format = iota
	FormatLegacy
)

// number of metadata fields ahead of the winner
const legacyMetaFields = 3

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatLegacy:
		return "legacy"
	}
	return "?"
}

// ParseFormat maps a -format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return FormatPlain, nil
	case "legacy":
		return FormatLegacy, nil
	}
	return FormatPlain, fmt.Errorf("unknown format %q (want plain or legacy)", s)
}

// MinFields is the fewest comma separated fields a record may have.
func (f Format) MinFields() int {
	if f == FormatLegacy {
		return legacyMetaFields + 1
	}
	return 2
}

func (f Format) winnerIndex() int {
	if f == FormatLegacy {
		return legacyMetaFields
	}
	return 0
}

// Team is one or more competitors credited jointly with a placement.
type Team []string

func (t Team) String() string {
	return strings.Join(t, " "+MemberSep+" ")
}

// Match is one recorded outcome: Winner beat every team in Losers.
type Match struct {
	Line   int
	Winner Team
	Losers []Team

	// legacy format only
	Meta []string
	Date time.Time
}

// Teams returns the winner followed by the losers in record order.
func (m *Match) Teams() []Team {
	teams := make([]Team, 0, len(m.Losers)+1)
	teams = append(teams, m.Winner)
	return append(teams, m.Losers...)
}

var (
	// ErrSkip is returned for blank and comment lines. It is not a failure.
	ErrSkip = errors.New("no match on line")

	ErrTooFewFields = errors.New("too few fields")
	ErrEmptyName    = errors.New("empty competitor name")
	ErrNoLosers     = errors.New("no losing team")
)

// ParseError describes a record that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a single record. It returns ErrSkip for blank and comment
// lines and a *ParseError for malformed ones.
func Parse(line string, format Format) (*Match, error) {
	return parseLine(0, line, format)
}

func parseLine(lineNum int, raw string, format Format) (*Match, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, CommentTok) {
		return nil, ErrSkip
	}

	fields := strings.Split(line, FieldSep)
	if len(fields) < format.MinFields() {
		return nil, &ParseError{Line: lineNum, Text: line,
			Err: fmt.Errorf("%w: have %d, %v format needs at least %d",
				ErrTooFewFields, len(fields), format, format.MinFields())}
	}

	wi := format.winnerIndex()
	teams := make([]Team, 0, len(fields)-wi)
	for _, field := range fields[wi:] {
		team, err := explode(field)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Text: line, Err: err}
		}
		teams = append(teams, team)
	}
	if len(teams) < 2 {
		return nil, &ParseError{Line: lineNum, Text: line,
			Err: fmt.Errorf("%w: %v format needs a team after the winner",
				ErrNoLosers, format)}
	}

	m := &Match{
		Line:   lineNum,
		Winner: teams[0],
		Losers: teams[1:],
	}

	if format == FormatLegacy {
		m.Meta = make([]string, wi)
		for i, f := range fields[:wi] {
			m.Meta[i] = strings.TrimSpace(f)
		}
		d, err := internal.ParseDateOrZero(m.Meta[0])
		if err != nil {
			internal.Debugf("match: line %d: unparseable date %q: %v", lineNum, m.Meta[0], err)
			d = time.Time{}
		}
		m.Date = d
	}

	return m, nil
}

// explode splits one field into its trimmed member names.
func explode(field string) (Team, error) {
	parts := strings.Split(field, MemberSep)
	team := make(Team, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, fmt.Errorf("%w in field %q", ErrEmptyName, field)
		}
		team = append(team, name)
	}
	return team, nil
}

// ParseAll parses every line of text in order, dropping blank and comment
// lines. It stops at the first malformed line.
func ParseAll(text string, format Format) ([]*Match, error) {
	var matches []*Match
	for i, line := range strings.Split(text, "\n") {
		m, err := parseLine(i+1, line, format)
		if errors.Is(err, ErrSkip) {
			continue
		}
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	return matches, nil
}

// Since drops matches dated before t. Undated matches are kept since there is
// nothing to compare.
func Since(matches []*Match, t time.Time) []*Match {
	if t.IsZero() {
		return matches
	}
	kept := make([]*Match, 0, len(matches))
	for _, m := range matches {
		if !m.Date.IsZero() && m.Date.Before(t) {
			internal.Debugf("match: line %d: dated %v, before %v; skipped",
				m.Line, m.Date.Format("2006-01-02"), t.Format("2006-01-02"))
			continue
		}
		kept = append(kept, m)
	}
	return kept
}
