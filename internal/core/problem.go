package core

import "errors"

// ProblemKind classifies a non-fatal row problem.
type ProblemKind string

const (
	// ProblemIgnored marks expected, common rows the format does not import.
	ProblemIgnored ProblemKind = "ignored"
	// ProblemRejected marks rows that failed validation.
	ProblemRejected ProblemKind = "rejected"
)

// Problem is a row that produced no cluster.
type Problem struct {
	Row     int         `json:"row"` // 1-based data row index (header excluded)
	Kind    ProblemKind `json:"kind"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
}

// RowState is the terminal state of one record.
type RowState string

const (
	StateClustered RowState = "clustered"
	StateIgnored   RowState = "ignored"
	StateRejected  RowState = "rejected"
)

// NewProblem classifies a row error. It must not be called with fatal errors.
func NewProblem(row int, err error) Problem {
	return Problem{
		Row:     row,
		Kind:    ClassifyError(err),
		Message: err.Error(),
		Code:    MapError(err).Code,
	}
}

// ClassifyError returns ProblemIgnored for *UnsupportedError and
// ProblemRejected for everything else.
func ClassifyError(err error) ProblemKind {
	var unsupported *UnsupportedError
	if errors.As(err, &unsupported) {
		return ProblemIgnored
	}
	return ProblemRejected
}

// State maps a problem kind to the record's terminal state.
func (k ProblemKind) State() RowState {
	if k == ProblemIgnored {
		return StateIgnored
	}
	return StateRejected
}
