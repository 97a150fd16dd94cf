package rest

import (
	"encoding/json"
	"net/http"

	"github.com/svgmerge/svgmerge/pkg/render"
	"github.com/svgmerge/svgmerge/pkg/version"
)

// RendererStatus reports one renderer backend on the server host.
type RendererStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// StatusResponse is returned by GET /api/v1/status.
type StatusResponse struct {
	Version   string           `json:"version"`
	Renderers []RendererStatus `json:"renderers"`
}

// Status reports the server version and the renderer backends that
// are usable on the server host.
func (s *server) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResponse{Version: version.Version}
		for _, b := range render.Backends() {
			resp.Renderers = append(resp.Renderers, RendererStatus{
				Name:      b.Name(),
				Available: b.Available(),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&resp)
	}
}
