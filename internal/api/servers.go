package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/contracts"
	"github.com/magnetlabs/magnet/internal/servers"
)

// ServersResponse is the response for the catalog listing endpoints.
type ServersResponse struct {
	Body []catalog.FrontendServer
}

// ListServersRequest narrows a listing, every given filter must match.
type ListServersRequest struct {
	Query   string `doc:"Substring of the identifier, title or description" example:"file"       query:"query"`
	Tag     string `doc:"Comma-separated tags, all of which must be present" example:"files,local" query:"tag"`
	Creator string `doc:"Catalog creator, ignoring case"                     example:"Anthropic"  query:"creator"`
}

func (r *ListServersRequest) filters() map[string]string {
	return map[string]string{
		catalog.FilterKeyQuery:   r.Query,
		catalog.FilterKeyTags:    r.Tag,
		catalog.FilterKeyCreator: r.Creator,
	}
}

// ServerRequest identifies a catalog entry by path parameter.
type ServerRequest struct {
	ID string `doc:"Catalog identifier of the server" example:"filesystem" path:"id"`
}

// InstallBody carries optional overrides for install and update.
// Omitted fields fall back to the catalog entry.
type InstallBody struct {
	Env       map[string]string `doc:"Environment for the launched server, replaces the catalog env"  json:"env,omitempty"`
	InputArgs []string          `doc:"Values for the server's input argument, replaces catalog values" json:"inputArgs,omitempty"`
}

// InstallRequest is the request for install and update.
type InstallRequest struct {
	ID   string       `doc:"Catalog identifier of the server" example:"filesystem" path:"id"`
	Body *InstallBody `required:"false"`
}

// ResultResponse is the flattened outcome of a mutating operation.
type ResultResponse struct {
	Body servers.Result
}

// RegisterServerRoutes sets up the catalog and installation endpoints.
func RegisterServerRoutes(routerAPI huma.API, manager contracts.ServerManager, apiPathPrefix string) {
	serversAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Servers"}

	// Add route at the root of the group (no path specified).
	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listServers",
			Method:      http.MethodGet,
			Summary:     "List catalog servers with their installed state",
			Tags:        tags,
		},
		func(ctx context.Context, input *ListServersRequest) (*ServersResponse, error) {
			return handleServers(ctx, manager.Servers, input.filters())
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listInstalledServers",
			Method:      http.MethodGet,
			Path:        "/installed",
			Summary:     "List installed catalog servers",
			Tags:        tags,
		},
		func(ctx context.Context, input *ListServersRequest) (*ServersResponse, error) {
			return handleServers(ctx, manager.InstalledServers, input.filters())
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "installServer",
			Method:      http.MethodPost,
			Path:        "/{id}/install",
			Summary:     "Install a catalog server into the client config",
			Tags:        tags,
		},
		func(ctx context.Context, input *InstallRequest) (*ResultResponse, error) {
			err := manager.Install(ctx, input.ID, installOptions(input.Body))
			return result(err, fmt.Sprintf("Server '%s' installed", input.ID)), nil
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "updateServer",
			Method:      http.MethodPut,
			Path:        "/{id}",
			Summary:     "Replace the installed record of a catalog server",
			Tags:        tags,
		},
		func(ctx context.Context, input *InstallRequest) (*ResultResponse, error) {
			err := manager.Update(ctx, input.ID, installOptions(input.Body))
			return result(err, fmt.Sprintf("Server '%s' updated", input.ID)), nil
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "uninstallServer",
			Method:      http.MethodDelete,
			Path:        "/{id}",
			Summary:     "Remove a server from the client config",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerRequest) (*ResultResponse, error) {
			err := manager.Uninstall(ctx, input.ID)
			return result(err, fmt.Sprintf("Server '%s' uninstalled", input.ID)), nil
		},
	)
}

func handleServers(
	ctx context.Context,
	list func(context.Context) ([]catalog.FrontendServer, error),
	filters map[string]string,
) (*ServersResponse, error) {
	got, err := list(ctx)
	if err != nil {
		return nil, err
	}

	got, err = catalog.FilterServers(got, filters)
	if err != nil {
		return nil, err
	}

	return &ServersResponse{Body: got}, nil
}

func installOptions(body *InstallBody) servers.InstallOptions {
	if body == nil {
		return servers.InstallOptions{}
	}
	return servers.InstallOptions{Env: body.Env, InputArgs: body.InputArgs}
}

// result always answers with a body, failures are reported in it rather than through the status code.
func result(err error, message string) *ResultResponse {
	return &ResultResponse{Body: servers.NewResult(err, message)}
}
