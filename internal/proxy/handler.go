package proxy

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/southmarket/storefront/internal/domain"
)

// MountPrefix is the fixed path prefix the proxy is served under.
const MountPrefix = "/api"

// Handler adapts the forwarder to an http.Handler suitable for a chi
// catch-all route under MountPrefix.
func (f *Forwarder) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		suffix := chi.URLParam(r, "*")
		if suffix == "" {
			// Not mounted through chi, fall back to prefix stripping.
			suffix = strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, MountPrefix), "/")
		}

		req := toForwardedRequest(r, suffix)
		resp := f.Forward(r.Context(), req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(resp.Body)
	}
}

func toForwardedRequest(r *http.Request, suffix string) (req domain.ForwardedRequest) {
	req.Method = r.Method
	req.TargetPath = suffix
	if r.Method == http.MethodGet {
		req.RawQuery = r.URL.RawQuery
		return req
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		// An unreadable body fails JSON validation downstream and
		// yields the unavailable envelope.
		req.Body = nil
		return req
	}
	req.Body = body
	return req
}
