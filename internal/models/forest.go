package models

import (
	"fmt"
	"math"
)

const leafNode = -1

// Tree is one fitted decision tree in flattened array form:
// node i splits on Feature[i] at Threshold[i]; x <= threshold goes to
// ChildrenLeft[i], otherwise ChildrenRight[i]. Leaves have ChildrenLeft == -1.
// Value[i] holds the per-class weight at node i.
type Tree struct {
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Value         [][]float64 `json:"value"`
}

// Forest is an ensemble of trees voting by averaged class probability
type Forest struct {
	NFeatures int    `json:"n_features"`
	NClasses  int    `json:"n_classes"`
	Classes   []int  `json:"classes,omitempty"` // class code per output index; defaults to 0..n-1
	Trees     []Tree `json:"trees"`
}

// Validate checks array shapes and child indices
func (f *Forest) Validate() error {
	if f.NFeatures <= 0 {
		return fmt.Errorf("forest: n_features must be > 0")
	}
	if f.NClasses <= 0 {
		return fmt.Errorf("forest: n_classes must be > 0")
	}
	if len(f.Classes) != 0 && len(f.Classes) != f.NClasses {
		return fmt.Errorf("forest: classes has %d entries, want %d", len(f.Classes), f.NClasses)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest: no trees")
	}

	for ti, t := range f.Trees {
		n := len(t.Feature)
		if n == 0 {
			return fmt.Errorf("forest: tree %d is empty", ti)
		}
		if len(t.Threshold) != n || len(t.ChildrenLeft) != n || len(t.ChildrenRight) != n || len(t.Value) != n {
			return fmt.Errorf("forest: tree %d has mismatched array lengths", ti)
		}
		for i := 0; i < n; i++ {
			if len(t.Value[i]) != f.NClasses {
				return fmt.Errorf("forest: tree %d node %d has %d class values, want %d", ti, i, len(t.Value[i]), f.NClasses)
			}
			left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
			if left == leafNode {
				continue
			}
			if left <= i || left >= n || right <= i || right >= n {
				return fmt.Errorf("forest: tree %d node %d has invalid children (%d, %d)", ti, i, left, right)
			}
			if t.Feature[i] < 0 || t.Feature[i] >= f.NFeatures {
				return fmt.Errorf("forest: tree %d node %d splits on feature %d outside [0,%d)", ti, i, t.Feature[i], f.NFeatures)
			}
		}
	}
	return nil
}

// Predict returns the class code with the highest mean leaf probability.
// The lowest index wins ties.
func (f *Forest) Predict(x []float64) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}

	best := 0
	for i := 1; i < len(proba); i++ {
		if proba[i] > proba[best] {
			best = i
		}
	}

	if len(f.Classes) != 0 {
		return f.Classes[best], nil
	}
	return best, nil
}

// PredictProba returns the mean normalized leaf distribution over trees
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(x) != f.NFeatures {
		return nil, fmt.Errorf("forest: got %d features, want %d", len(x), f.NFeatures)
	}
	for i, v := range x {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("forest: feature %d is NaN", i)
		}
	}

	proba := make([]float64, f.NClasses)
	for ti := range f.Trees {
		leaf, err := f.Trees[ti].leaf(x)
		if err != nil {
			return nil, fmt.Errorf("forest: tree %d: %w", ti, err)
		}

		values := f.Trees[ti].Value[leaf]
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		if sum <= 0 {
			continue
		}
		for c, v := range values {
			proba[c] += v / sum
		}
	}

	n := float64(len(f.Trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}

func (t *Tree) leaf(x []float64) (int, error) {
	node := 0
	for steps := 0; steps <= len(t.Feature); steps++ {
		left := t.ChildrenLeft[node]
		if left == leafNode {
			return node, nil
		}
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = left
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return 0, fmt.Errorf("walk exceeded %d nodes", len(t.Feature))
}
