package api

// Health is the body of the liveness endpoint.
type Health struct {
	Status string `json:"status"`
}
