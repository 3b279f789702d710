package models

// Liveness
// GET Path: "/"

type HealthRequest struct{}

type HealthResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
