// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package projects

import "micromatch/cli/internal/model"

// Status is the phase of a fetch attempt.
type Status int

const (
	Loading Status = iota
	Failed
	Succeeded
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Failed:
		return "error"
	case Succeeded:
		return "success"
	default:
		return "unknown"
	}
}

// Outcome is the state of the most recent fetch. Exactly one of the three
// shapes is populated: Loading carries nothing, Failed carries Message and
// Succeeded carries Projects (possibly empty, never nil).
type Outcome struct {
	Status   Status
	Message  string
	Projects []model.Project
}

func loading() Outcome { return Outcome{Status: Loading} }

func failed(msg string) Outcome { return Outcome{Status: Failed, Message: msg} }

func succeeded(items []model.Project) Outcome {
	if items == nil {
		items = []model.Project{}
	}
	return Outcome{Status: Succeeded, Projects: items}
}

// Done reports whether the attempt has finished.
func (o Outcome) Done() bool { return o.Status != Loading }
