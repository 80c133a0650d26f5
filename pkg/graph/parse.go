package graph

import (
	"strconv"
	"strings"
)

// commentPrefix marks a line that is skipped by Build.
const commentPrefix = "#"

// skipLine reports whether a raw line carries no declaration.
// Only truly empty lines count as blank; a whitespace-only line is parsed
// and rejected like any other line without a leading id.
func skipLine(line string) bool {
	return line == "" || strings.HasPrefix(line, commentPrefix)
}

// parseLine splits a declaration into its vertex id and neighbor candidates.
// Candidates equal to the vertex are dropped; duplicates are kept and
// collapse later in the adjacency sets. ok is false when the line has no
// leading integer.
func parseLine(line string) (vertex int, neighbors []int, ok bool) {
	sc := intScanner{s: line}
	vertex, ok = sc.next()
	if !ok {
		return 0, nil, false
	}
	for {
		n, more := sc.next()
		if !more {
			break
		}
		if n != vertex {
			neighbors = append(neighbors, n)
		}
	}
	return vertex, neighbors, true
}

// intScanner extracts consecutive whitespace-separated signed 32-bit integers.
// Extraction stops at the first position that does not start an integer, so
// "1 2x 3" yields 1 and 2 only, and an out-of-range value ends the sequence.
type intScanner struct {
	s   string
	pos int
}

func (sc *intScanner) next() (int, bool) {
	s := sc.s
	i := sc.pos
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		sc.pos = len(s)
		return 0, false
	}
	v, err := strconv.ParseInt(s[start:i], 10, 32)
	if err != nil {
		sc.pos = len(s)
		return 0, false
	}
	sc.pos = i
	return int(v), true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
