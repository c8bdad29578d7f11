package services

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// similarityThreshold is the minimum score for a typo-tolerant match
const similarityThreshold = 0.7

// normalizeInput lowercases and strips accents so "Baño" matches "bano"
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity is 1 - levenshtein distance / longest length
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptionsWithSub)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// fuzzyContains reports whether query appears in text, exactly after normalization or
// as a close match of one of its words
func fuzzyContains(text, query string) bool {
	text, query = normalizeInput(text), normalizeInput(query)
	if query == "" {
		return true
	}
	if strings.Contains(text, query) {
		return true
	}
	for _, word := range strings.Fields(text) {
		if calculateSimilarity(word, query) >= similarityThreshold {
			return true
		}
	}
	return calculateSimilarity(text, query) >= similarityThreshold
}

type scored[T any] struct {
	item  T
	score float64
}

// rankByName scores items against query and returns the matches best first, plus the
// closest known name as a suggestion when nothing matched
func rankByName[T any](items []T, name func(T) string, query string) ([]T, string) {
	q := normalizeInput(query)
	var hits []scored[T]
	for _, it := range items {
		n := normalizeInput(name(it))
		score := calculateSimilarity(n, q)
		if strings.Contains(n, q) {
			score += 1
		} else {
			for _, word := range strings.Fields(n) {
				if s := calculateSimilarity(word, q); s > score {
					score = s
				}
			}
		}
		if score >= similarityThreshold {
			hits = append(hits, scored[T]{item: it, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	out := make([]T, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.item)
	}
	if len(out) > 0 || len(items) == 0 {
		return out, ""
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, normalizeInput(name(it)))
	}
	return out, createMatcher(names).Closest(q)
}
