package grades

import "errors"

var (
	ErrInvalidGrade    = errors.New("invalid grade, expected one of A, B, C, D, E, F")
	ErrMissingArgument = errors.New("student and subject are required")
)
