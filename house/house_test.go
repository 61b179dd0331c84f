/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package house

import (
	"errors"
	"testing"

	"github.com/mikeb26/arenarank/match"
)

func TestParse(t *testing.T) {
	m, err := Parse("HouseA, alice, bob\n# comment\n\n  HouseB,carol ,  \nLonely\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Len() != 3 {
		t.Fatalf("Len = %d; want 3", m.Len())
	}
	cases := map[string]string{"alice": "HouseA", "bob": "HouseA", "carol": "HouseB"}
	for member, want := range cases {
		got, ok := m.House(member)
		if !ok || got != want {
			t.Errorf("House(%q) = %q, %v; want %q", member, got, ok, want)
		}
	}
	if _, ok := m.House("Lonely"); ok {
		t.Errorf("house name must not map to itself")
	}
}

func TestParseLastHouseWins(t *testing.T) {
	m, err := Parse("HouseA, alice\nHouseB, alice")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h, _ := m.House("alice"); h != "HouseB" || m.Len() != 1 {
		t.Errorf("House(alice) = %q, Len %d; want HouseB, 1", h, m.Len())
	}
}

func TestParseEmptyHouse(t *testing.T) {
	_, err := Parse("HouseA, alice\n , bob\n")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse error = %v; want *ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d; want 2", pe.Line)
	}
}

func TestApply(t *testing.T) {
	m, err := Parse("HouseA, alice, bob")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := m.Apply("alice,bob")
	if got != "HouseA,HouseA" {
		t.Fatalf("Apply = %q; want HouseA,HouseA", got)
	}

	mt, err := match.Parse(got, match.FormatPlain)
	if err != nil {
		t.Fatalf("match.Parse: %v", err)
	}
	if mt.Winner[0] != "HouseA" || mt.Losers[0][0] != "HouseA" {
		t.Errorf("parsed %+v; want HouseA on both sides", mt)
	}
}

func TestApplySubstringHazard(t *testing.T) {
	m, err := Parse("Reds, al")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// literal replacement also rewrites "al" inside "alice"
	if got := m.Apply("al,alice"); got != "Reds,Redsice" {
		t.Errorf("Apply = %q; want Reds,Redsice", got)
	}
}

func TestApplyNil(t *testing.T) {
	var m *Map
	if got := m.Apply("p1,p2"); got != "p1,p2" {
		t.Errorf("nil Apply = %q", got)
	}
	if m.Len() != 0 {
		t.Errorf("nil Len = %d", m.Len())
	}
}
