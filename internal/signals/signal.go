// Package signals turns match inputs into per-signal outcomes.
// Every evaluator is read-only after construction and safe for concurrent use.
package signals

import (
	"github.com/wonny/matchday/internal/contracts"
)

// Result is one signal's verdict before weighting
type Result struct {
	Outcome contracts.Outcome
	Detail  string
}

func neutral(detail string) Result {
	return Result{Outcome: contracts.Neutral, Detail: detail}
}

func failed(name contracts.SignalName, err error) error {
	return &contracts.SignalError{Signal: name, Err: err}
}
