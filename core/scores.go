package core

import "github.com/arcadecab/cabcheck/schema"

// Score dimension labels. Each constructor below fixes the shape of one kind of score.
const (
	labelStatus        = "status"
	labelControlStatus = "controlStatus"
	labelButtonsStatus = "buttonsStatus"
	labelControlsSum   = "controlScoreSum"
	labelButtonsScore  = "buttonsScore"
	labelRequiredSum   = "requiredScoreSum"
	labelOptionalSum   = "optionalScoreSum"
)

// controlScore ranks a control by overall status, then control fit, then button fit.
func controlScore(status, controlStatus, buttonsStatus schema.ControlsStatus) schema.Score {
	return schema.NewScore(
		schema.StatusDim(labelStatus, status),
		schema.StatusDim(labelControlStatus, controlStatus),
		schema.StatusDim(labelButtonsStatus, buttonsStatus),
	)
}

func buttonsScore(status schema.ControlsStatus) schema.Score {
	return schema.NewScore(schema.StatusDim(labelStatus, status))
}

// controlSetScore ranks a control set by status, then the sum of its control scores,
// then its buttons score.
func controlSetScore(status schema.ControlsStatus, controls []schema.ControlCompatibility, buttons schema.ButtonsCompatibility) schema.Score {
	scores := make([]schema.Score, len(controls))
	for i, c := range controls {
		scores[i] = c.Score
	}
	return schema.NewScore(
		schema.StatusDim(labelStatus, status),
		schema.NestedDim(labelControlsSum, schema.SumScores(zeroControlScore, scores...)),
		schema.NestedDim(labelButtonsScore, buttons.Score),
	)
}

// controlConfigScore ranks a configuration by status, then the sum of its required
// set scores, then the sum of its optional set scores.
func controlConfigScore(status schema.ControlsStatus, required, optional []schema.ControlSetCompatibility) schema.Score {
	sum := func(sets []schema.ControlSetCompatibility) schema.Score {
		scores := make([]schema.Score, len(sets))
		for i, s := range sets {
			scores[i] = s.Score
		}
		return schema.SumScores(zeroControlSetScore, scores...)
	}
	return schema.NewScore(
		schema.StatusDim(labelStatus, status),
		schema.NestedDim(labelRequiredSum, sum(required)),
		schema.NestedDim(labelOptionalSum, sum(optional)),
	)
}

// Zero shapes used as the starting point of sums.
var (
	zeroControlScore    = controlScore(0, 0, 0).Zero()
	zeroControlSetScore = schema.NewScore(
		schema.StatusDim(labelStatus, schema.ControlsStatus(0)),
		schema.NestedDim(labelControlsSum, zeroControlScore),
		schema.NestedDim(labelButtonsScore, buttonsScore(0)),
	).Zero()
)
