package handlers

import (
	"context"
	"net/http"

	"github.com/mpilhlt/dhamps-gist/internal/models"

	"github.com/danielgtaylor/huma/v2"
)

func healthFunc(ctx context.Context, input *models.HealthRequest) (*models.HealthResponse, error) {
	return &models.HealthResponse{
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte("API is running"),
	}, nil
}

// RegisterHealthRoutes registers the liveness route with the API
func RegisterHealthRoutes(api huma.API) error {
	healthOp := huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Check that the service is up",
		Tags:        []string{"health"},
	}

	huma.Register(api, healthOp, healthFunc)
	return nil
}
