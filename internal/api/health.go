package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// HealthStatusOK is reported while the daemon is serving requests.
const HealthStatusOK = "ok"

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Body struct {
		Status string `doc:"Daemon status" example:"ok" json:"status"`
	}
}

// RegisterHealthRoutes sets up the liveness endpoint.
func RegisterHealthRoutes(routerAPI huma.API, path string) {
	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "getHealth",
			Method:      http.MethodGet,
			Path:        path,
			Summary:     "Report daemon liveness",
			Tags:        []string{"Health"},
		},
		func(_ context.Context, _ *struct{}) (*HealthResponse, error) {
			resp := &HealthResponse{}
			resp.Body.Status = HealthStatusOK
			return resp, nil
		},
	)
}
