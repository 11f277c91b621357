// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decision

import (
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/roombook/pkg/types"
)

// epsilon guards the column norms and the closeness denominator against
// zero-variance columns and identical rows.
const epsilon = 1e-12

// Rank orders the matrix rows by TOPSIS closeness to the ideal room.
//
// Attributes present in anchors are first transformed to the similarity
// score 1/(1+|v-anchor|), which makes "close to target" uniformly
// bigger-is-better; other attributes pass through unchanged. Columns are
// then L2-normalized, weighted (weights renormalized to sum to 1, missing
// attributes weighted 1), and each row's Euclidean distances to the
// ideal-best and ideal-worst rows yield the closeness score
// d⁻/(d⁺+d⁻). Higher is better; ties keep matrix insertion order.
//
// lowerIsBetter flips the best/worst orientation of a column, but only
// for columns without an anchor: an anchored column already encodes its
// orientation through the similarity transform, and flipping it would
// invert its meaning.
//
// A single-row matrix scores 1.0 at rank 1 with no distance computation.
// Scores are relative to the other rows of the same matrix and carry no
// meaning across calls.
func Rank(m *Matrix, anchors, weights map[string]float64, lowerIsBetter []string) ([]types.RankedRoom, error) {
	if m == nil || m.IsEmpty() {
		return nil, nil
	}

	attrs := m.Attributes()
	roomIDs := m.RoomIDs()

	if m.Len() == 1 {
		roomID := roomIDs[0]
		return []types.RankedRoom{{
			RoomID:     roomID,
			Attributes: m.Row(roomID),
			Score:      1.0,
			Rank:       1,
		}}, nil
	}

	// Anchor transform.
	adjusted := make([][]float64, len(roomIDs))
	for i, roomID := range roomIDs {
		row := m.rows[roomID]
		adjusted[i] = make([]float64, len(attrs))
		for j, attr := range attrs {
			v := row[attr]
			if anchor, ok := anchors[attr]; ok {
				adjusted[i][j] = 1 / (1 + math.Abs(v-anchor))
			} else {
				adjusted[i][j] = v
			}
		}
	}

	// Column-wise L2 normalization.
	for j := range attrs {
		var sumSquares float64
		for i := range adjusted {
			sumSquares += adjusted[i][j] * adjusted[i][j]
		}
		norm := math.Sqrt(sumSquares) + epsilon
		for i := range adjusted {
			adjusted[i][j] /= norm
		}
	}

	// Weights, renormalized to sum to 1.
	w := make([]float64, len(attrs))
	var total float64
	for j, attr := range attrs {
		wj, ok := weights[attr]
		if !ok {
			wj = 1
		}
		if wj < 0 {
			return nil, fmt.Errorf("negative weight %v for attribute %q", wj, attr)
		}
		w[j] = wj
		total += wj
	}
	if total <= 0 {
		return nil, fmt.Errorf("attribute weights sum to zero")
	}
	for j := range w {
		w[j] /= total
		for i := range adjusted {
			adjusted[i][j] *= w[j]
		}
	}

	// Ideal best and worst per column. Anchored columns are always
	// higher-is-better; see the convention note above.
	lower := make(map[string]bool, len(lowerIsBetter))
	for _, attr := range lowerIsBetter {
		if _, anchored := anchors[attr]; !anchored {
			lower[attr] = true
		}
	}

	best := make([]float64, len(attrs))
	worst := make([]float64, len(attrs))
	for j, attr := range attrs {
		colMin, colMax := adjusted[0][j], adjusted[0][j]
		for i := 1; i < len(adjusted); i++ {
			if adjusted[i][j] < colMin {
				colMin = adjusted[i][j]
			}
			if adjusted[i][j] > colMax {
				colMax = adjusted[i][j]
			}
		}
		if lower[attr] {
			best[j], worst[j] = colMin, colMax
		} else {
			best[j], worst[j] = colMax, colMin
		}
	}

	// Distances and closeness.
	ranked := make([]types.RankedRoom, len(roomIDs))
	for i, roomID := range roomIDs {
		var distBest, distWorst float64
		for j := range attrs {
			db := adjusted[i][j] - best[j]
			dw := adjusted[i][j] - worst[j]
			distBest += db * db
			distWorst += dw * dw
		}
		distBest = math.Sqrt(distBest)
		distWorst = math.Sqrt(distWorst)

		score := distWorst / (distBest + distWorst + epsilon)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, fmt.Errorf("degenerate closeness for room %s", roomID)
		}

		ranked[i] = types.RankedRoom{
			RoomID:     roomID,
			Attributes: m.Row(roomID),
			Score:      score,
		}
	}

	// Descending score, insertion order on ties.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}
