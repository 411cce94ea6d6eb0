// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xsolve

import (
	"path/filepath"
	"strings"
)

// PkgNameOf returns the longest prefix of a pkgver string ("name-version")
// ending before a "-" that is immediately followed by a digit. Bare names
// without a "-digits" suffix have no extractable name.
func PkgNameOf(pkgver string) (string, bool) {
	for i := len(pkgver) - 1; i > 0; i-- {
		if pkgver[i] == '-' && i+1 < len(pkgver) && isDigit(pkgver[i+1]) {
			return pkgver[:i], true
		}
	}
	return "", false
}

// pkgPatternBounds describes a parsed "NAME<op><version>" pattern.
type pkgPatternBounds struct {
	name            string
	min, max        string
	hasMin, hasMax  bool
	minIncl, maxIncl bool
}

// parsePkgPattern splits a pattern of the form NAME>=A<B, NAME>=A, NAME<B,
// or NAME-V into a name and min/max version bounds with inclusivity
// flags. It does not handle glob patterns; callers check for glob
// metacharacters first.
func parsePkgPattern(pattern string) (pkgPatternBounds, bool) {
	cut := strings.IndexAny(pattern, "<>")
	rest := ""
	name := ""
	if cut >= 0 {
		name = pattern[:cut]
		rest = pattern[cut:]
	} else if dash := strings.LastIndexByte(pattern, '-'); dash >= 0 {
		name = pattern[:dash]
		rest = pattern[dash+1:]
	} else {
		return pkgPatternBounds{}, false
	}

	var b pkgPatternBounds
	b.name = name

	minIdx := strings.IndexByte(rest, '>')
	var minStr, maxStr string
	var haveMin, haveMax bool
	if minIdx >= 0 {
		haveMin = true
		inclusive := minIdx+1 < len(rest) && rest[minIdx+1] == '='
		start := minIdx + 1
		if inclusive {
			start++
		}
		b.minIncl = inclusive
		if maxIdx := strings.IndexByte(rest[start:], '<'); maxIdx >= 0 {
			minStr = rest[start : start+maxIdx]
		} else {
			minStr = rest[start:]
		}
	}

	maxIdx := strings.IndexByte(rest, '<')
	if maxIdx >= 0 {
		haveMax = true
		inclusive := maxIdx+1 < len(rest) && rest[maxIdx+1] == '='
		start := maxIdx + 1
		if inclusive {
			start++
		}
		b.maxIncl = inclusive
		maxStr = rest[start:]
	}

	if !haveMin && !haveMax {
		// NAME-V: exact version equality.
		b.min, b.max = rest, rest
		b.minIncl, b.maxIncl = true, true
		b.hasMin, b.hasMax = true, true
		return b, true
	}

	b.min, b.hasMin = minStr, haveMin
	b.max, b.hasMax = maxStr, haveMax
	return b, true
}

// MatchesPattern reports whether candidate (a "name-version" pkgver
// string) matches pattern. Match rules, in order:
//  1. exact string equality,
//  2. pattern containing a glob metacharacter (* ? [ ]): filename-style
//     match via filepath.Match, with no special rule for a leading period,
//  3. interval pattern: name must match exactly and candidate's version
//     must fall within the parsed [min,max] bounds respecting
//     inclusivity.
func MatchesPattern(candidate, pattern string) bool {
	if candidate == pattern {
		return true
	}

	if strings.ContainsAny(pattern, "*?[]") {
		ok, err := filepath.Match(pattern, candidate)
		return err == nil && ok
	}

	bounds, ok := parsePkgPattern(pattern)
	if !ok {
		return false
	}

	dash := strings.LastIndexByte(candidate, '-')
	if dash < 0 {
		return false
	}
	name, version := candidate[:dash], candidate[dash+1:]
	if name != bounds.name {
		return false
	}

	if bounds.min == bounds.max && bounds.hasMin && bounds.hasMax && bounds.minIncl && bounds.maxIncl {
		return CompareDewey(version, bounds.min) == 0
	}

	if bounds.hasMin {
		cmp := CompareDewey(version, bounds.min)
		if cmp < 0 || (cmp == 0 && !bounds.minIncl) {
			return false
		}
	}
	if bounds.hasMax {
		cmp := CompareDewey(version, bounds.max)
		if cmp > 0 || (cmp == 0 && !bounds.maxIncl) {
			return false
		}
	}
	return true
}
