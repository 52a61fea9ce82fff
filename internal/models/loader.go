package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names inside the bundle directory
const (
	HistoryDir          = "history"
	HistoryModelFile    = "history_model.json"
	HistoryTeamsFile    = "team_encoder.json"
	HistoryWinnersFile  = "winner_encoder.json"
	StrengthDir         = "strength"
	StrengthModelFile   = "strength_model.json"
	StrengthTeamsFile   = "team_encoder.json"
	StrengthResultsFile = "result_encoder.json"
	StrengthColumnsFile = "model_columns.json"
)

// Bundle holds the classifiers loaded at startup.
// Both models are read-only after loading and safe for concurrent use.
type Bundle struct {
	History  *HistoryModel
	Strength *StrengthModel
}

// LoadBundle reads history/ and strength/ artifacts from dir
func LoadBundle(dir string) (*Bundle, error) {
	history, err := LoadHistoryModel(filepath.Join(dir, HistoryDir))
	if err != nil {
		return nil, err
	}
	strength, err := LoadStrengthModel(filepath.Join(dir, StrengthDir))
	if err != nil {
		return nil, err
	}
	return &Bundle{History: history, Strength: strength}, nil
}

// LoadHistoryModel reads the history classifier and its encoders
func LoadHistoryModel(dir string) (*HistoryModel, error) {
	forest, err := LoadForest(filepath.Join(dir, HistoryModelFile))
	if err != nil {
		return nil, err
	}
	teams, err := LoadLabelEncoder(filepath.Join(dir, HistoryTeamsFile))
	if err != nil {
		return nil, err
	}
	winners, err := LoadLabelEncoder(filepath.Join(dir, HistoryWinnersFile))
	if err != nil {
		return nil, err
	}
	return NewHistoryModel(forest, teams, winners)
}

// LoadStrengthModel reads the squad classifier, its encoders and column list
func LoadStrengthModel(dir string) (*StrengthModel, error) {
	forest, err := LoadForest(filepath.Join(dir, StrengthModelFile))
	if err != nil {
		return nil, err
	}
	teams, err := LoadLabelEncoder(filepath.Join(dir, StrengthTeamsFile))
	if err != nil {
		return nil, err
	}
	results, err := LoadLabelEncoder(filepath.Join(dir, StrengthResultsFile))
	if err != nil {
		return nil, err
	}

	var columns []string
	if err := readJSON(filepath.Join(dir, StrengthColumnsFile), &columns); err != nil {
		return nil, err
	}
	return NewStrengthModel(forest, teams, results, columns)
}

// LoadForest reads and validates a forest artifact
func LoadForest(path string) (*Forest, error) {
	var f Forest
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid forest %s: %w", path, err)
	}
	return &f, nil
}

// LoadLabelEncoder reads a label encoder artifact
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	var e LabelEncoder
	if err := readJSON(path, &e); err != nil {
		return nil, err
	}
	if err := e.init(); err != nil {
		return nil, fmt.Errorf("invalid encoder %s: %w", path, err)
	}
	return &e, nil
}

func readJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	return nil
}
