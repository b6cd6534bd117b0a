package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcadecab/cabcheck/schema"
)

type scored struct {
	name  string
	score schema.Score
}

func mk(name string, status schema.ControlsStatus, tiebreak float64) scored {
	return scored{name, schema.NewScore(schema.StatusDim("status", status), schema.NumberDim("n", tiebreak))}
}

func names(items []scored) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func getScore(s scored) schema.Score { return s.score }

func TestSortByScoreDesc(t *testing.T) {
	items := []scored{
		mk("a", schema.ControlsOK, 1),
		mk("b", schema.ControlsNative, 0),
		mk("c", schema.ControlsOK, 1),
		mk("d", schema.ControlsOK, 2),
		mk("e", schema.ControlsUnknown, 9),
	}
	SortByScoreDesc(items, getScore)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names(items), "ties keep input order")
}

func TestRankGames(t *testing.T) {
	results := []schema.GameCompatibility{
		{GameNameInput: "unknown", OverallStatus: schema.OverallUnknown, KnownOverallStatus: schema.OverallUnknown},
		{GameNameInput: "ok-known-good", OverallStatus: schema.OverallOK, KnownOverallStatus: schema.OverallOK},
		{GameNameInput: "native", OverallStatus: schema.OverallNative, KnownOverallStatus: schema.OverallNative},
		{GameNameInput: "ok", OverallStatus: schema.OverallOK, KnownOverallStatus: schema.OverallOK},
		{GameNameInput: "unknown-but-good", OverallStatus: schema.OverallUnknown, KnownOverallStatus: schema.OverallGood},
	}

	byStatus := RankGames(results, schema.SortByStatus)
	var got []string
	for _, r := range byStatus {
		got = append(got, r.GameNameInput)
	}
	assert.Equal(t, []string{"native", "ok-known-good", "ok", "unknown-but-good", "unknown"}, got)

	byInput := RankGames(results, schema.SortByInput)
	assert.Equal(t, results, byInput)
	assert.Equal(t, "unknown", results[0].GameNameInput, "input slice is not reordered")
}
