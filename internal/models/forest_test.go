package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stump(feature int, threshold float64, left, right []float64) Tree {
	return Tree{
		Feature:       []int{feature, -2, -2},
		Threshold:     []float64{threshold, -2, -2},
		ChildrenLeft:  []int{1, -1, -1},
		ChildrenRight: []int{2, -1, -1},
		Value:         [][]float64{{1, 1}, left, right},
	}
}

func TestForest_Predict(t *testing.T) {
	f := &Forest{
		NFeatures: 1,
		NClasses:  2,
		Trees:     []Tree{stump(0, 0.5, []float64{3, 1}, []float64{0, 5})},
	}
	require.NoError(t, f.Validate())

	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"below threshold goes left", 0, 0},
		{"equal to threshold goes left", 0.5, 0},
		{"above threshold goes right", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Predict([]float64{tt.x})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForest_PredictProbaAveragesNormalizedLeaves(t *testing.T) {
	f := &Forest{
		NFeatures: 1,
		NClasses:  2,
		Trees: []Tree{
			stump(0, 0.5, []float64{30, 10}, []float64{0, 1}),
			stump(0, 0.5, []float64{0, 2}, []float64{1, 0}),
		},
	}
	require.NoError(t, f.Validate())

	proba, err := f.PredictProba([]float64{0})
	require.NoError(t, err)
	assert.InDelta(t, 0.375, proba[0], 1e-12)
	assert.InDelta(t, 0.625, proba[1], 1e-12)
}

func TestForest_TieGoesToFirstClass(t *testing.T) {
	f := &Forest{
		NFeatures: 1,
		NClasses:  2,
		Classes:   []int{7, 9},
		Trees: []Tree{
			stump(0, 0.5, []float64{1, 0}, []float64{1, 0}),
			stump(0, 0.5, []float64{0, 1}, []float64{0, 1}),
		},
	}
	require.NoError(t, f.Validate())

	got, err := f.Predict([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestForest_PredictInputErrors(t *testing.T) {
	f := &Forest{NFeatures: 2, NClasses: 2, Trees: []Tree{stump(0, 0.5, []float64{1, 0}, []float64{0, 1})}}
	require.NoError(t, f.Validate())

	_, err := f.Predict([]float64{1})
	assert.Error(t, err, "wrong feature count")
}

func TestForest_Validate(t *testing.T) {
	good := stump(0, 0.5, []float64{1, 0}, []float64{0, 1})

	backEdge := stump(0, 0.5, []float64{1, 0}, []float64{0, 1})
	backEdge.ChildrenRight = []int{0, -1, -1}

	shortValue := stump(0, 0.5, []float64{1}, []float64{0, 1})

	badFeature := stump(3, 0.5, []float64{1, 0}, []float64{0, 1})

	tests := []struct {
		name   string
		forest Forest
	}{
		{"no features", Forest{NFeatures: 0, NClasses: 2, Trees: []Tree{good}}},
		{"no classes", Forest{NFeatures: 1, NClasses: 0, Trees: []Tree{good}}},
		{"no trees", Forest{NFeatures: 1, NClasses: 2}},
		{"classes mismatch", Forest{NFeatures: 1, NClasses: 2, Classes: []int{0}, Trees: []Tree{good}}},
		{"back edge", Forest{NFeatures: 1, NClasses: 2, Trees: []Tree{backEdge}}},
		{"short value row", Forest{NFeatures: 1, NClasses: 2, Trees: []Tree{shortValue}}},
		{"feature out of range", Forest{NFeatures: 1, NClasses: 2, Trees: []Tree{badFeature}}},
		{"empty tree", Forest{NFeatures: 1, NClasses: 2, Trees: []Tree{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.forest.Validate())
		})
	}
}

func TestTree_WalkGuard(t *testing.T) {
	// Unvalidated cycle: node 0 -> node 1 -> node 0
	tree := Tree{
		Feature:       []int{0, 0},
		Threshold:     []float64{1, 1},
		ChildrenLeft:  []int{1, 0},
		ChildrenRight: []int{1, 0},
		Value:         [][]float64{{1}, {1}},
	}

	_, err := tree.leaf([]float64{0})
	assert.Error(t, err)
}
