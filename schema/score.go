package schema

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// DimensionKind tells how a score dimension holds its value.
type DimensionKind int

// Dimension kinds.
const (
	NumberDimension DimensionKind = iota
	StatusDimension
	NestedDimension
)

// Dimension is one labelled slot of a Score.
type Dimension struct {
	Label  string        `json:"label"`
	Kind   DimensionKind `json:"-"`
	Value  float64       `json:"value"`            // status rank or plain number
	Status string        `json:"status,omitempty"` // status name, status dimensions only
	Nested *Score        `json:"nested,omitempty"` // nested dimensions only
}

// Score is an ordered, labelled vector compared lexicographically. Scores built by the
// same constructor always share a shape, which is what makes them summable.
type Score struct {
	Dims []Dimension `json:"dims"`
}

// StatusDim creates a status dimension valued at the status rank.
func StatusDim[S Status](label string, s S) Dimension {
	return Dimension{Label: label, Kind: StatusDimension, Value: float64(s), Status: s.String()}
}

// NumberDim creates a plain number dimension.
func NumberDim(label string, v float64) Dimension {
	return Dimension{Label: label, Kind: NumberDimension, Value: v}
}

// NestedDim embeds a whole score as one dimension.
func NestedDim(label string, s Score) Dimension {
	return Dimension{Label: label, Kind: NestedDimension, Nested: &s}
}

// NewScore builds a score from its dimensions in priority order.
func NewScore(dims ...Dimension) Score {
	return Score{Dims: dims}
}

// CompareScores compares two scores lexicographically, earlier dimensions first.
// Nested dimensions compare recursively. It returns -1, 0 or +1.
func CompareScores(a, b Score) int {
	n := max(len(a.Dims), len(b.Dims))
	for i := range n {
		var da, db Dimension
		if i < len(a.Dims) {
			da = a.Dims[i]
		}
		if i < len(b.Dims) {
			db = b.Dims[i]
		}
		if c := compareDims(da, db); c != 0 {
			return c
		}
	}
	return 0
}

func compareDims(a, b Dimension) int {
	if a.Kind == NestedDimension || b.Kind == NestedDimension {
		var na, nb Score
		if a.Nested != nil {
			na = *a.Nested
		}
		if b.Nested != nil {
			nb = *b.Nested
		}
		return CompareScores(na, nb)
	}
	return cmp.Compare(a.Value, b.Value)
}

// Zero returns a score with the same shape and every value set to zero. Status
// dimensions become number dimensions since a sum of ranks is no longer a status.
func (s Score) Zero() Score {
	out := Score{Dims: make([]Dimension, len(s.Dims))}
	for i, d := range s.Dims {
		switch d.Kind {
		case NestedDimension:
			var nested Score
			if d.Nested != nil {
				nested = d.Nested.Zero()
			}
			out.Dims[i] = NestedDim(d.Label, nested)
		default:
			out.Dims[i] = NumberDim(d.Label, 0)
		}
	}
	return out
}

// SumScores adds scores dimension-wise starting from zero, which fixes the shape of the
// result. Summing an empty list yields zero. Adding a score of another shape panics
// because it can only come from mixing constructors.
func SumScores(zero Score, scores ...Score) Score {
	out := zero.Zero()
	for _, s := range scores {
		out = addScores(out, s)
	}
	return out
}

func addScores(acc, s Score) Score {
	if len(acc.Dims) != len(s.Dims) {
		panic(fmt.Sprintf("score shape mismatch: %d dimensions vs %d", len(acc.Dims), len(s.Dims)))
	}
	out := Score{Dims: make([]Dimension, len(acc.Dims))}
	for i, d := range acc.Dims {
		o := s.Dims[i]
		if d.Label != o.Label {
			panic(fmt.Sprintf("score shape mismatch: dimension %d is %q vs %q", i, d.Label, o.Label))
		}
		if d.Kind == NestedDimension {
			if o.Kind != NestedDimension || d.Nested == nil || o.Nested == nil {
				panic(fmt.Sprintf("score shape mismatch: dimension %q is not nested on both sides", d.Label))
			}
			out.Dims[i] = NestedDim(d.Label, addScores(*d.Nested, *o.Nested))
			continue
		}
		if o.Kind == NestedDimension {
			panic(fmt.Sprintf("score shape mismatch: dimension %q is nested on one side", d.Label))
		}
		out.Dims[i] = NumberDim(d.Label, d.Value+o.Value)
	}
	return out
}

// String renders the score as "[label=value, ...]" for diagnostics.
func (s Score) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, d := range s.Dims {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.Label)
		sb.WriteByte('=')
		switch d.Kind {
		case NestedDimension:
			if d.Nested != nil {
				sb.WriteString(d.Nested.String())
			} else {
				sb.WriteString("[]")
			}
		case StatusDimension:
			sb.WriteString(d.Status)
		default:
			sb.WriteString(strconv.FormatFloat(d.Value, 'f', -1, 64))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
