package bot

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`\w+`)

// normalize lowercases a query and collapses runs of whitespace to single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

func tokens(s string) []string {
	return wordRe.FindAllString(strings.ToLower(s), -1)
}

// tokenSetRatio is the Jaccard similarity of the word sets of a and b.
func tokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range tokens(s) {
		set[t] = struct{}{}
	}
	return set
}

// similarity is the Ratcliff/Obershelp measure: twice the number of matching characters divided
// by the total length of both strings. Matching characters are found by locating the longest
// common substring and recursing on the pieces to its left and right.
func similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	m := matchingChars(ra, rb)
	return 2 * float64(m) / float64(len(ra)+len(rb))
}

func matchingChars(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingChars(a[:ai], b[:bi]) + matchingChars(a[ai+size:], b[bi+size:])
}

func longestCommonSubstring(a, b []rune) (aStart, bStart, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return aStart, bStart, size
}
