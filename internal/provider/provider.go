package provider

import "context"

// Status is the closed set of outcomes of one generation call.
type Status int8

const (
	StatusSucceeded Status = iota
	StatusRateLimited
	StatusUnauthorized
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusRateLimited:
		return "rate_limited"
	case StatusUnauthorized:
		return "unauthorized"
	default:
		return "failed"
	}
}

// Request is one instruction plus user input pair.
type Request struct {
	Instructions string
	Input        string
}

// Result is the classified outcome of a generation call. Text is set only
// when Status is StatusSucceeded; Err carries the cause otherwise.
type Result struct {
	Status Status
	Text   string
	Err    error
}

// Generator produces text from a prompt. Implementations make exactly one
// upstream call per Generate and never retry.
//
//go:generate mockery --name Generator --output . --inpackage --with-expecter
type Generator interface {
	Generate(ctx context.Context, req *Request) *Result
}

func succeeded(text string) *Result {
	return &Result{Status: StatusSucceeded, Text: text}
}

func failed(status Status, err error) *Result {
	return &Result{Status: status, Err: err}
}
