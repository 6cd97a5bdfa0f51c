package api

type Status struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// GetStatus lets clients read the envelope of any response embedding Status.
func (s Status) GetStatus() Status {
	return s
}
