package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"zeebeapi/internal/ipc"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/types"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// Gateway is the operation surface served over HTTP and IPC.
type Gateway interface {
	CheckConnectivity(ctx context.Context, endpoint types.Endpoint) types.Result
	Deploy(ctx context.Context, req types.DeployRequest) types.Result
	Run(ctx context.Context, req types.RunRequest) types.Result
}

type Handler struct {
	Gateway  Gateway
	profiles *profileResolver
}

// NewHandler builds the HTTP handler. profiles MAY be nil, in which case requests naming a
// profile are rejected.
func NewHandler(gw Gateway, profiles ports.ProfileStore) *Handler {
	return &Handler{
		Gateway:  gw,
		profiles: newProfileResolver(profiles),
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/zeebe/checkConnectivity", h.handleCheck)
	mux.HandleFunc("/zeebe/deploy", h.handleDeploy)
	mux.HandleFunc("/zeebe/run", h.handleRun)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req types.CheckRequest
	ep, ok := h.decode(w, r, &req, func() types.Endpoint { return req.Endpoint })
	if !ok {
		return
	}
	h.respond(w, h.Gateway.CheckConnectivity(r.Context(), ep))
}

func (h *Handler) handleDeploy(w http.ResponseWriter, r *http.Request) {
	var req types.DeployRequest
	ep, ok := h.decode(w, r, &req, func() types.Endpoint { return req.Endpoint })
	if !ok {
		return
	}
	req.Endpoint = ep
	h.respond(w, h.Gateway.Deploy(r.Context(), req))
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	var req types.RunRequest
	ep, ok := h.decode(w, r, &req, func() types.Endpoint { return req.Endpoint })
	if !ok {
		return
	}
	req.Endpoint = ep
	h.respond(w, h.Gateway.Run(r.Context(), req))
}

// decode reads the request body into req and resolves its endpoint, either inline or through the
// `profile` field. It writes the error response itself and reports false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req any, inline func() types.Endpoint) (types.Endpoint, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "read error", http.StatusBadRequest)
		return nil, false
	}
	defer func() {
		_ = r.Body.Close()
	}()
	if len(body) == 0 {
		http.Error(w, "empty body", http.StatusBadRequest)
		return nil, false
	}

	var ref struct {
		Profile string `json:"profile"`
	}
	if err := json.Unmarshal(body, &ref); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return nil, false
	}
	if err := json.Unmarshal(body, req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	ep := inline()
	if ref.Profile == "" {
		return ep, true
	}
	if ep != nil {
		http.Error(w, "endpoint and profile are mutually exclusive", http.StatusBadRequest)
		return nil, false
	}
	ep, err = h.profiles.Endpoint(r.Context(), ref.Profile)
	switch {
	case errors.Is(err, types.ErrNotFound):
		http.Error(w, "unknown profile", http.StatusNotFound)
		return nil, false
	case err != nil:
		log.WithError(err).WithField("profile", ref.Profile).Error("resolve profile")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return ep, true
}

// respond writes a result. Failed operations are still a 200: the outcome is in the body.
func (h *Handler) respond(w http.ResponseWriter, res types.Result) {
	if err := writeJSON(w, http.StatusOK, ipc.WireResult(res)); err != nil {
		log.WithError(err).Error("write response")
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}
