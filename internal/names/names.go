// Package names filters a token stream down to known character names and
// turns the matches into counts and display weights.
package names

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrNoNames is returned when no token matched the allow-list
var ErrNoNames = errors.New("no allow-listed names found in text")

// AllowList is the fixed set of names kept from the token stream
type AllowList struct {
	set   map[string]struct{}
	names []string
}

// NewAllowList builds an allow-list, dropping blanks and duplicates while
// keeping first-seen order.
func NewAllowList(names []string) *AllowList {
	a := &AllowList{set: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := a.set[n]; ok {
			continue
		}
		a.set[n] = struct{}{}
		a.names = append(a.names, n)
	}
	return a
}

// LoadAllowList reads one name per line. Blank lines and lines starting
// with '#' are ignored.
func LoadAllowList(path string) (*AllowList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening names file: %w", err)
	}
	defer f.Close()

	var list []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list = append(list, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading names file: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("names file %s is empty", path)
	}
	return NewAllowList(list), nil
}

// Contains reports whether name is an exact member
func (a *AllowList) Contains(name string) bool {
	_, ok := a.set[name]
	return ok
}

// Names returns the members in their original order
func (a *AllowList) Names() []string {
	return append([]string(nil), a.names...)
}

func (a *AllowList) Len() int { return len(a.names) }

// Filter returns the tokens that exactly match an allow-listed name,
// preserving order and duplicates.
func Filter(tokens []string, allow *AllowList) []string {
	var out []string
	for _, tok := range tokens {
		if allow.Contains(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// Frequencies maps a term to its occurrence count
type Frequencies map[string]int

// Entry is one row of a ranked frequency table
type Entry struct {
	Name  string
	Count int
}

// Count tallies each distinct token
func Count(tokens []string) Frequencies {
	freq := make(Frequencies)
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}

// Total is the sum of all counts
func (f Frequencies) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// Ranked returns entries by count descending, ties broken by name
func (f Frequencies) Ranked() []Entry {
	entries := make([]Entry, 0, len(f))
	for name, count := range f {
		entries = append(entries, Entry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// MinMax returns the smallest and largest counts. ok is false for an empty map.
func (f Frequencies) MinMax() (lo, hi int, ok bool) {
	for _, c := range f {
		if !ok {
			lo, hi, ok = c, c, true
			continue
		}
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi, ok
}
