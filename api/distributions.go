package api

import "github.com/bigredeye/gradebook/internal/scorer"

type DistributionsResponse struct {
	Status

	Distributions scorer.Distribution `json:"distributions,omitempty"`
}

type SubjectDistributionResponse struct {
	Status

	Code      string           `json:"code,omitempty"`
	Histogram scorer.Histogram `json:"histogram,omitempty"`
}
