package algo

import (
	"slices"

	"github.com/arcadecab/cabcheck/schema"
)

// SortByScoreDesc stably sorts items by score, best first. Ties keep their input order.
func SortByScoreDesc[T any](items []T, score func(T) schema.Score) {
	slices.SortStableFunc(items, func(a, b T) int {
		return schema.CompareScores(score(b), score(a))
	})
}

// RankGames returns check results in the requested order. Status order puts the best
// overall status first, then the best known status, keeping input order for ties.
func RankGames(results []schema.GameCompatibility, order schema.SortOrder) []schema.GameCompatibility {
	ranked := slices.Clone(results)
	if order == schema.SortByInput {
		return ranked
	}
	slices.SortStableFunc(ranked, func(a, b schema.GameCompatibility) int {
		if c := schema.CompareStatus(b.OverallStatus, a.OverallStatus); c != 0 {
			return c
		}
		return schema.CompareStatus(b.KnownOverallStatus, a.KnownOverallStatus)
	})
	return ranked
}
