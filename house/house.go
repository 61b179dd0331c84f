/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package house collapses individual competitor names into house names
// before match records are parsed.
//
// A house file has one house per line:
//
//	<house>, <member>, <member>, ...
//
// Substitution is literal text replacement over the whole input, so a member
// name that is a substring of another token ("al" in "alice") is replaced
// inside that token too.
package house

import (
	"fmt"
	"strings"
)

type member struct {
	name  string
	house string
}

// Map is an ordered member to house mapping.
type Map struct {
	members []member
	index   map[string]int
}

type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: house name is empty: %q", e.Line, e.Text)
}

// Parse reads a house file. Blank and '#' lines are ignored. If a member is
// listed more than once the last house wins.
func Parse(text string) (*Map, error) {
	m := &Map{index: make(map[string]int)}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		house := strings.TrimSpace(fields[0])
		var names []string
		for _, f := range fields[1:] {
			if name := strings.TrimSpace(f); name != "" {
				names = append(names, name)
			}
		}
		if house == "" {
			if len(names) == 0 {
				continue
			}
			return nil, &ParseError{Line: i + 1, Text: line}
		}

		for _, name := range names {
			m.add(name, house)
		}
	}

	return m, nil
}

func (m *Map) add(name, house string) {
	if i, ok := m.index[name]; ok {
		m.members[i].house = house
		return
	}
	m.index[name] = len(m.members)
	m.members = append(m.members, member{name: name, house: house})
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.members)
}

// House returns the house member belongs to.
func (m *Map) House(member string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[member]
	if !ok {
		return "", false
	}
	return m.members[i].house, true
}

// Apply replaces every occurrence of every member name in text with the
// member's house. Members are applied one after another in file order, so
// the output of one replacement is visible to the next.
func (m *Map) Apply(text string) string {
	if m == nil {
		return text
	}
	for _, mb := range m.members {
		text = strings.ReplaceAll(text, mb.name, mb.house)
	}
	return text
}
