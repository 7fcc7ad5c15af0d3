package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vovakirdan/engine-cycle/internal/engine"
	"github.com/vovakirdan/engine-cycle/internal/export"
	"github.com/vovakirdan/engine-cycle/internal/registry"
)

// ConfigResponse is returned by the config endpoints.
type ConfigResponse struct {
	Config   engine.Config   `json:"config"`
	Geometry engine.Geometry `json:"geometry"`
}

// StateResponse describes the engine at one crank angle.
type StateResponse struct {
	Theta          float64           `json:"theta"`
	Model          string            `json:"model"`
	Phase          engine.Phase      `json:"phase"`
	Volume         float64           `json:"volume_cc"`
	Pressure       float64           `json:"pressure_bar"`
	PistonPosition float64           `json:"piston_position_mm"`
	PistonVelocity float64           `json:"piston_velocity_ms"`
	ConRodAngle    float64           `json:"con_rod_angle_deg"`
	Valves         engine.ValveState `json:"valves"`
	Spark          bool              `json:"spark"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidGeometry),
		errors.Is(err, engine.ErrInvalidConfiguration),
		errors.Is(err, engine.ErrInvalidStep),
		errors.Is(err, engine.ErrUnknownModel),
		errors.Is(err, errBadRequest):
		code = http.StatusBadRequest
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

// thetaParam parses the {theta} path variable in degrees.
func thetaParam(r *http.Request) (float64, error) {
	raw := mux.Vars(r)["theta"]
	theta, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0, fmt.Errorf("%w: invalid crank angle %q", errBadRequest, raw)
	}
	return theta, nil
}

// modelParam resolves ?model=, defaulting to the six-phase actual model.
func modelParam(r *http.Request) (engine.PressureModel, error) {
	id := r.URL.Query().Get("model")
	if id == "" {
		id = engine.ActualSixPhase.ID()
	}
	return registry.Create(id)
}

// stepParam parses ?step=, defaulting to engine.DefaultStep.
func stepParam(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("step")
	if raw == "" {
		return engine.DefaultStep, nil
	}
	step, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", engine.ErrInvalidStep, raw)
	}
	return step, nil
}

func (s *Server) configResponse() ConfigResponse {
	return ConfigResponse{Config: s.engine.Config(), Geometry: s.engine.Geometry()}
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := s.configResponse()
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) patchConfig(w http.ResponseWriter, r *http.Request) {
	var u engine.Update
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	s.mu.Lock()
	err := s.engine.Apply(u)
	resp := s.configResponse()
	if err == nil {
		s.metrics.updates.Inc()
		s.metrics.Observe(s.engine)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("rejected configuration update", "error", err)
		writeError(w, err)
		return
	}
	s.logger.Info("configuration updated", "rpm", resp.Config.RPM, "load", resp.Config.Load, "cr", resp.Config.CompressionRatio)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) resetConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.engine.Reset(s.base)
	if err == nil {
		s.metrics.Observe(s.engine)
	}
	resp := s.configResponse()
	s.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

func (s *Server) getVolume(w http.ResponseWriter, r *http.Request) {
	theta, err := thetaParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.RLock()
	v := s.engine.Volume(theta)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]float64{"theta": theta, "volume_cc": v})
}

func (s *Server) getPressure(w http.ResponseWriter, r *http.Request) {
	theta, err := thetaParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := modelParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.RLock()
	p := s.engine.Pressure(m, theta)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{"theta": theta, "model": m.ID(), "pressure_bar": p})
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	theta, err := thetaParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := modelParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.RLock()
	e := s.engine
	resp := StateResponse{
		Theta:          theta,
		Model:          m.ID(),
		Phase:          e.Phase(theta),
		Volume:         e.Volume(theta),
		Pressure:       e.Pressure(m, theta),
		PistonPosition: e.PistonPosition(theta),
		PistonVelocity: e.PistonVelocity(theta),
		ConRodAngle:    e.ConRodAngle(theta),
		Valves:         e.Valves(theta),
		Spark:          e.SparkFiring(theta),
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getCycle(w http.ResponseWriter, r *http.Request) {
	m, err := modelParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	step, err := stepParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.RLock()
	points, err := s.engine.SampleCycle(m, step)
	s.mu.RUnlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) getCycleCSV(w http.ResponseWriter, r *http.Request) {
	m, err := modelParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	step, err := stepParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Sample under the lock, write after releasing it.
	s.mu.RLock()
	points, err := s.engine.SampleCycle(m, step)
	cfg := s.engine.Config()
	s.mu.RUnlock()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "engine_cycle_"+m.ID()+".csv"))
	if err := export.WriteCSV(w, points, cfg, m); err != nil {
		s.logger.Error("csv export failed", "error", err)
	}
}

func (s *Server) getPerformance(w http.ResponseWriter, r *http.Request) {
	m, err := modelParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.RLock()
	perf := s.engine.PerformanceFor(m)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, perf)
}
