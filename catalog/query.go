package catalog

import (
	"sort"
	"strconv"
	"strings"

	"gamehub/models"
)

// SortMode selects the comparator applied after filtering.
type SortMode string

const (
	SortNone        SortMode = ""
	SortTopRated    SortMode = "topRated"
	SortTopScored   SortMode = "topScored"
	SortReleaseDate SortMode = "releaseDate"
)

// ParseSortMode maps a query-string value onto a SortMode. Unknown values
// fall back to SortNone, which preserves input order.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortTopRated, SortTopScored, SortReleaseDate:
		return SortMode(s)
	default:
		return SortNone
	}
}

// QueryState is the ephemeral search/filter/sort state for one catalog view.
// ReleaseYears maps year strings to independent toggles; all false (or an
// empty map) means no year restriction.
type QueryState struct {
	SearchText   string
	Platform     string
	Sort         SortMode
	ReleaseYears map[string]bool
}

// VisibleGames returns the ordered visible subset of the catalog for one
// query state. Pure: identical inputs always yield the identical ordered
// output, and the input slice is never mutated.
func VisibleGames(all []models.GameSummary, q QueryState) []models.GameSummary {
	out := make([]models.GameSummary, 0, len(all))
	for _, g := range all {
		if matches(g, q) {
			out = append(out, g)
		}
	}

	// Stable sort so equal keys keep their input order.
	switch q.Sort {
	case SortReleaseDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReleaseDate.After(out[j].ReleaseDate)
		})
	case SortTopRated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AverageRating > out[j].AverageRating
		})
	case SortTopScored:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AverageScore > out[j].AverageScore
		})
	}

	return out
}

// matches applies the three filter predicates as a conjunction.
func matches(g models.GameSummary, q QueryState) bool {
	if q.SearchText != "" &&
		!strings.Contains(strings.ToLower(g.Name), strings.ToLower(q.SearchText)) {
		return false
	}
	if !matchesPlatform(g, q.Platform) {
		return false
	}
	return matchesYear(g, q.ReleaseYears)
}

func matchesPlatform(g models.GameSummary, platform string) bool {
	if platform == "" || platform == "any" {
		return true
	}
	want := strings.ToLower(platform)
	for _, tag := range g.Platforms {
		if strings.Contains(strings.ToLower(tag), want) {
			return true
		}
	}
	return false
}

func matchesYear(g models.GameSummary, years map[string]bool) bool {
	restricted := false
	for _, on := range years {
		if on {
			restricted = true
			break
		}
	}
	if !restricted {
		return true
	}
	return years[strconv.Itoa(g.ReleaseDate.Year())]
}
