package httpapi

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scorepanel/pkg/types"
)

// Service defines the methods required by the HTTP API layer. Status and
// Frame read panel state owned by the event loop and may block until the loop
// answers or ctx ends.
type Service interface {
	Status(ctx context.Context) (types.StatusResponse, error)
	Frame(ctx context.Context) (image.Image, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/status", statusHandler(svc))
	r.Get("/frame.png", frameHandler(svc))
	r.Get("/healthz", healthzHandler)
	r.Get("/readyz", readyzHandler(svc))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// statusHandler godoc
// @Summary      Panel status
// @Description  Snapshot of the controller link, display mode, settings, players, slideshow and scoreboard fields.
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Failure      503  {object}  types.ErrorResponse
// @Failure      504  {object}  types.ErrorResponse
// @Router       /status [get]
func statusHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, cancel := requestContext(r)
		defer cancel()
		var st types.StatusResponse
		err := observeLoopWait("status", func() (err error) {
			st, err = svc.Status(ctx)
			return err
		})
		if err != nil {
			status := writeServiceError(w, err)
			logRequest(r, status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			logRequest(r, http.StatusInternalServerError, start, err)
			return
		}
		logRequest(r, http.StatusOK, start, nil)
	}
}

// frameHandler godoc
// @Summary      Current slideshow frame
// @Description  The last frame composed by the slideshow, as PNG.
// @Tags         status
// @Produce      png
// @Success      200  {file}    binary
// @Failure      404  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Failure      504  {object}  types.ErrorResponse
// @Router       /frame.png [get]
func frameHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, cancel := requestContext(r)
		defer cancel()
		var img image.Image
		err := observeLoopWait("frame", func() (err error) {
			img, err = svc.Frame(ctx)
			return err
		})
		if err != nil {
			status := writeServiceError(w, err)
			logRequest(r, status, start, err)
			return
		}
		if img == nil {
			writeJSONError(w, http.StatusNotFound, "no frame")
			logRequest(r, http.StatusNotFound, start, nil)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := png.Encode(w, img); err != nil {
			logRequest(r, http.StatusInternalServerError, start, err)
			return
		}
		logRequest(r, http.StatusOK, start, nil)
	}
}

// healthzHandler godoc
// @Summary      Liveness
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ok"
// @Router       /healthz [get]
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readyzHandler godoc
// @Summary      Readiness
// @Description  Ready once the controller link is connected.
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ready"
// @Failure      503  {string}  string  "connecting"
// @Router       /readyz [get]
func readyzHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("connecting"))
	}
}
