/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ranker

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
)

const (
	SigmaMultiplier = 3
	MinScore        = 1.0

	ReportHeader = "ts    mu      sigma   name (record)"
)

// ConservativeScore is the lower confidence bound mu - 3*sigma, floored at 1.
func ConservativeScore(r Rating) float64 {
	return math.Max(MinScore, r.Mu-SigmaMultiplier*r.Sigma)
}

type Standing struct {
	Name   string
	Score  float64
	Rating Rating
	Tally  Tally
}

// less orders standings by (Score, Mu, Sigma, Name), ascending.
func (s Standing) less(o Standing) bool {
	if s.Score != o.Score {
		return s.Score < o.Score
	}
	if s.Rating.Mu != o.Rating.Mu {
		return s.Rating.Mu < o.Rating.Mu
	}
	if s.Rating.Sigma != o.Rating.Sigma {
		return s.Rating.Sigma < o.Rating.Sigma
	}
	return s.Name < o.Name
}

// Standings returns one row per competitor, best first. Rows are sorted
// descending on the whole (score, mu, sigma, name) tuple so the order is
// fully determined.
func (t *Tracker) Standings() []Standing {
	rows := make([]Standing, 0, len(t.entries))
	for name, e := range t.entries {
		rows = append(rows, Standing{
			Name:   name,
			Score:  ConservativeScore(e.rating),
			Rating: e.rating,
			Tally:  e.tally,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[j].less(rows[i])
	})

	return rows
}

// Render writes the leaderboard: a header, one row per competitor and a
// trailing blank line.
func (t *Tracker) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ReportHeader)
	for _, s := range t.Standings() {
		fmt.Fprintf(bw, "%2d %f %f %s (%d-%d)\n", int(s.Score), s.Rating.Mu,
			s.Rating.Sigma, s.Name, s.Tally.Wins, s.Tally.Losses)
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}
