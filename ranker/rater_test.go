/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ranker

import (
	"math"
	"testing"

	"github.com/mikeb26/arenarank/match"
)

func TestOpenSkillDefault(t *testing.T) {
	d := NewOpenSkill().Default()
	if math.Abs(d.Mu-25) > 1e-9 || math.Abs(d.Sigma-25.0/3) > 1e-9 {
		t.Fatalf("Default = %+v; want mu 25 sigma 25/3", d)
	}
	if s := ConservativeScore(d); s != MinScore {
		t.Errorf("new competitor score = %v; want %v", s, MinScore)
	}
}

func TestOpenSkillRate(t *testing.T) {
	os := NewOpenSkill()
	d := os.Default()

	out, err := os.Rate([][]Rating{{d, d}, {d}, {d}})
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if len(out) != 3 || len(out[0]) != 2 || len(out[1]) != 1 || len(out[2]) != 1 {
		t.Fatalf("Rate returned shape %v", out)
	}
	// teams place in order, so the middle team also beat the last one
	for _, r := range out[0] {
		if r.Mu <= d.Mu {
			t.Errorf("winner mu %v did not increase", r.Mu)
		}
	}
	if !(out[0][0].Mu > out[1][0].Mu && out[1][0].Mu > out[2][0].Mu) {
		t.Errorf("mu not ordered by placement: %v > %v > %v",
			out[0][0].Mu, out[1][0].Mu, out[2][0].Mu)
	}
	if out[2][0].Mu >= d.Mu {
		t.Errorf("last place mu %v did not decrease", out[2][0].Mu)
	}
	for _, team := range out {
		for _, r := range team {
			if r.Sigma >= d.Sigma {
				t.Errorf("sigma %v did not shrink", r.Sigma)
			}
		}
	}
}

func TestOpenSkillRateOneOnOne(t *testing.T) {
	os := NewOpenSkill()
	d := os.Default()

	out, err := os.Rate([][]Rating{{d}, {d}})
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if out[0][0].Mu <= d.Mu {
		t.Errorf("winner mu %v did not increase", out[0][0].Mu)
	}
	if out[1][0].Mu >= d.Mu {
		t.Errorf("loser mu %v did not decrease", out[1][0].Mu)
	}
}

func TestOpenSkillRateRejectsBadShape(t *testing.T) {
	os := NewOpenSkill()
	d := os.Default()
	if _, err := os.Rate([][]Rating{{d}}); err == nil {
		t.Errorf("expected error for a single team")
	}
	if _, err := os.Rate([][]Rating{{d}, {}}); err == nil {
		t.Errorf("expected error for an empty team")
	}
}

func TestOpenSkillEndToEnd(t *testing.T) {
	tr := NewTracker(NewOpenSkill())
	ms, err := match.ParseAll("p1,p2", match.FormatPlain)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if err := tr.Apply(ms); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	st := tr.Standings()
	if len(st) != 2 || st[0].Name != "p1" || st[1].Name != "p2" {
		t.Fatalf("standings = %+v; want p1 then p2", st)
	}
	if st[0].Score <= st[1].Score {
		t.Errorf("winner score %v not above loser score %v", st[0].Score, st[1].Score)
	}
	if st[0].Tally != (Tally{Wins: 1}) || st[1].Tally != (Tally{Losses: 1}) {
		t.Errorf("tallies = %+v / %+v", st[0].Tally, st[1].Tally)
	}
}

func TestOpenSkillOrderDependence(t *testing.T) {
	run := func(text string) Rating {
		tr := NewTracker(NewOpenSkill())
		ms, err := match.ParseAll(text, match.FormatPlain)
		if err != nil {
			t.Fatalf("ParseAll: %v", err)
		}
		if err := tr.Apply(ms); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		r, _ := tr.Rating("p1")
		return r
	}

	a := run("p1,p2\np2,p1")
	b := run("p2,p1\np1,p2")
	if a == b {
		t.Errorf("p1 rating %+v independent of match order", a)
	}
}
