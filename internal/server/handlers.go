package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/metasystem/steering/pkg/cyber"
	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/steering"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code apperrors.Code) int {
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(string(code), "NOT_FOUND"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
	writeError(w, status, string(code), apperrors.UserMessage(err))
}

// decode reads a JSON body into v, failing with INVALID_FORMAT.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "request body too large")
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "malformed request body")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req steering.Request
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	req.Refresh = r.URL.Query().Get("refresh") == "true"

	sim, hit, err := s.runner.Simulate(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeJSON(w, http.StatusOK, sim)
}

// pathsRequest is the body of /api/v1/influence/paths.
type pathsRequest struct {
	Objects      json.RawMessage `json:"objects"`
	Correlations json.RawMessage `json:"correlations"`
	TargetID     string          `json:"target_id"`
	Goal         string          `json:"goal"`
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	var req pathsRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	objects, correlations := req.Objects, req.Correlations
	if len(objects) == 0 {
		objects = json.RawMessage("[]")
	}
	if len(correlations) == 0 {
		correlations = json.RawMessage("[]")
	}

	data, err := steering.FindInfluencePathsJSON(objects, correlations, req.TargetID, req.Goal)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type powerRequest struct {
	V *float64 `json:"v"`
	A *float64 `json:"a"`
	C *float64 `json:"c"`
}

func (s *Server) handlePower(w http.ResponseWriter, r *http.Request) {
	var req powerRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.V == nil || req.A == nil || req.C == nil {
		s.fail(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "v, a and c are required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"total_power": cyber.TotalPower(*req.V, *req.A, *req.C),
	})
}

type integrityRequest struct {
	V1 *float64 `json:"v1"`
	V2 *float64 `json:"v2"`
}

func (s *Server) handleIntegrity(w http.ResponseWriter, r *http.Request) {
	var req integrityRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.V1 == nil || req.V2 == nil {
		s.fail(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "v1 and v2 are required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"integrity_score": cyber.AxiologicalIntegrity(*req.V1, *req.V2),
	})
}

type distortionRequest struct {
	IIn   *float64 `json:"i_in"`
	IReal *float64 `json:"i_real"`
}

func (s *Server) handleDistortion(w http.ResponseWriter, r *http.Request) {
	var req distortionRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.IIn == nil || req.IReal == nil {
		s.fail(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "i_in and i_real are required"))
		return
	}
	writeJSON(w, http.StatusOK, cyber.AnalyzeDistortion(*req.IIn, *req.IReal))
}
