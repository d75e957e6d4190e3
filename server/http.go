package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/Aditi-Asati/ames-price-prediction/pkg/log"
)

// PredictRequest is the JSON body of POST /api/predict. Rows hold one
// feature map per observation to score.
type PredictRequest struct {
	Rows []map[string]float64 `json:"rows"`
}

// Bind validates the request after decoding.
func (r *PredictRequest) Bind(_ *http.Request) error {
	if len(r.Rows) == 0 {
		return errEmptyRows
	}
	return nil
}

var errEmptyRows = errRequest("rows must contain at least one observation")

type errRequest string

func (e errRequest) Error() string { return string(e) }

// PredictResponse carries the predictions in request order.
type PredictResponse struct {
	Predictions []float64 `json:"predictions"`
}

// HealthResponse reports service liveness and the loaded model schema.
type HealthResponse struct {
	Status       string `json:"status"`
	Features     int    `json:"features"`
	SchemaDigest string `json:"schema_digest"`
}

// ErrResponse is the JSON error envelope.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "invalid request",
		ErrorText:      err.Error(),
	}
}

func errPrediction(err error) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "prediction failed",
		ErrorText:      err.Error(),
	}
}

// NewRouter builds the HTTP API around a prediction service.
func NewRouter(svc *PredictionService, logger log.Logger) http.Handler {
	if logger == nil {
		logger = log.Discard()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			render.JSON(w, req, &HealthResponse{
				Status:       "ok",
				Features:     len(svc.FeatureNames()),
				SchemaDigest: svc.SchemaDigest(),
			})
		})

		r.Post("/predict", func(w http.ResponseWriter, req *http.Request) {
			data := &PredictRequest{}
			if err := render.Bind(req, data); err != nil {
				_ = render.Render(w, req, errInvalidRequest(err))
				return
			}

			predictions, err := svc.PredictBatch(data.Rows)
			if err != nil {
				logger.Error("prediction failed", log.ErrAttrKey, err)
				_ = render.Render(w, req, errPrediction(err))
				return
			}

			logger.Info("predictions served", log.SamplesKey, len(predictions))
			render.JSON(w, req, &PredictResponse{Predictions: predictions})
		})
	})

	return r
}
