package models

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/wonny/matchday/internal/contracts"
)

// LabelEncoder maps labels to their index in a fixed class list.
// The artifact format is {"classes": ["Arsenal", "Barcelona", ...]}.
type LabelEncoder struct {
	Classes []string `json:"classes"`

	index map[string]int
}

// NewLabelEncoder builds an encoder from classes; duplicates are rejected
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	e := &LabelEncoder{Classes: classes}
	if err := e.init(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *LabelEncoder) init() error {
	if len(e.Classes) == 0 {
		return fmt.Errorf("label encoder has no classes")
	}
	e.index = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		if _, dup := e.index[c]; dup {
			return fmt.Errorf("label encoder: duplicate class %q", c)
		}
		e.index[c] = i
	}
	return nil
}

// Encode returns the code for label (exact match)
func (e *LabelEncoder) Encode(label string) (int, bool) {
	code, ok := e.index[label]
	return code, ok
}

// Decode returns the label for code
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("label code %d out of range [0,%d)", code, len(e.Classes))
	}
	return e.Classes[code], nil
}

// Len returns the number of classes
func (e *LabelEncoder) Len() int {
	return len(e.Classes)
}

// Closest returns the known label with the smallest case-insensitive edit distance
func (e *LabelEncoder) Closest(label string) string {
	target := strings.ToLower(strings.TrimSpace(label))
	best := ""
	bestDist := -1
	for _, c := range e.Classes {
		d := levenshtein.ComputeDistance(target, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func encodeTeam(e *LabelEncoder, name string) (int, error) {
	code, ok := e.Encode(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", contracts.ErrUnknownTeam, name)
	}
	return code, nil
}
