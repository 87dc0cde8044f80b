package daemon

import "net/http"

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.Health)
	mux.HandleFunc("/v1/workspaces", a.Workspaces)
	mux.HandleFunc("/v1/workspaces/", a.WorkspaceByID)
	mux.HandleFunc("/v1/shutdown", a.ShutdownDaemon)
}
