// Package vercmp implements the optional VersionComparer port using the
// distro version-ordering rules the integrity checker defers to when a
// dependency expression carries a version operator: an epoch-aware,
// alnum-run comparison of "[epoch:]version[-release]" strings.
package vercmp

import (
	"strconv"
	"strings"
)

// Comparer implements ports.VersionComparer.
type Comparer struct{}

// New returns a ready-to-use Comparer.
func New() *Comparer { return &Comparer{} }

// Compare returns <0, 0, or >0 as a < b, a == b, or a > b.
func (Comparer) Compare(a, b string) int {
	return Compare(a, b)
}

// Satisfies reports whether a candidate version ver satisfies a dependency
// constraint "op wantVer".
func (c Comparer) Satisfies(ver, op, wantVer string) bool {
	if op == "" {
		return true
	}
	cmp := Compare(ver, wantVer)
	switch op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

// Compare implements the epoch:version-release comparison: epochs compare
// numerically first (an unspecified epoch is 0), then the version and
// release segments compare using the same alnum-run algorithm.
func Compare(a, b string) int {
	aEpoch, aRest := splitEpoch(a)
	bEpoch, bRest := splitEpoch(b)
	if aEpoch != bEpoch {
		if aEpoch < bEpoch {
			return -1
		}
		return 1
	}

	aVer, aRel := splitRelease(aRest)
	bVer, bRel := splitRelease(bRest)

	if c := compareSegment(aVer, bVer); c != 0 {
		return c
	}
	return compareSegment(aRel, bRel)
}

func splitEpoch(v string) (int, string) {
	idx := strings.IndexByte(v, ':')
	if idx < 0 {
		return 0, v
	}
	epoch, err := strconv.Atoi(v[:idx])
	if err != nil {
		return 0, v
	}
	return epoch, v[idx+1:]
}

func splitRelease(v string) (version, release string) {
	idx := strings.LastIndexByte(v, '-')
	if idx < 0 {
		return v, ""
	}
	return v[:idx], v[idx+1:]
}

// compareSegment compares two version (or release) strings by walking
// alternating runs of digits and non-digits: numeric runs compare
// numerically, alphabetic runs compare lexically, and a numeric run always
// outranks an empty/alphabetic run at the same position, while a leftover
// alphabetic run ranks below a string that has run out (matching the
// rpm/pacman convention that "1.0a" < "1.0" and "1.0.a" < "1.0.1").
func compareSegment(a, b string) int {
	for len(a) > 0 || len(b) > 0 {
		a = trimLeadingSeparators(a)
		b = trimLeadingSeparators(b)

		if len(a) == 0 || len(b) == 0 {
			// One side has run out: a leftover digit run is newer than
			// nothing, a leftover alphabetic run is older than nothing.
			if len(a) == 0 && len(b) == 0 {
				return 0
			}
			rest, sign := a, 1
			if len(a) == 0 {
				rest, sign = b, -1
			}
			if isDigit(rest[0]) {
				return sign
			}
			return -sign
		}

		aDigit := isDigit(a[0])
		bDigit := isDigit(b[0])

		if aDigit != bDigit {
			// A digit run is ranked as newer than an alphabetic run at
			// the same position.
			if aDigit {
				return 1
			}
			return -1
		}

		var aRun, bRun string
		if aDigit {
			aRun, a = takeWhile(a, isDigit)
			bRun, b = takeWhile(b, isDigit)
			if c := compareNumeric(aRun, bRun); c != 0 {
				return c
			}
			continue
		}

		aRun, a = takeWhile(a, isAlpha)
		bRun, b = takeWhile(b, isAlpha)
		if c := strings.Compare(aRun, bRun); c != 0 {
			if c < 0 {
				return -1
			}
			return 1
		}
	}
	return 0
}

func trimLeadingSeparators(s string) string {
	for len(s) > 0 && !isDigit(s[0]) && !isAlpha(s[0]) {
		s = s[1:]
	}
	return s
}

func takeWhile(s string, pred func(byte) bool) (run, rest string) {
	i := 0
	for i < len(s) && pred(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
