package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/susu3304/chipsettle/internal/cache"
	"github.com/susu3304/chipsettle/internal/report"
	"github.com/susu3304/chipsettle/internal/settlement"
)

const maxBodyBytes = 1 << 20

// sessionRequest is the body of every POST endpoint.
type sessionRequest struct {
	HouseFee float64             `json:"houseFee"`
	Players  []settlement.Player `json:"players"`
}

type reasonInfo struct {
	Reason settlement.Reason `json:"reason"`
	Label  string            `json:"label"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleReasons(w http.ResponseWriter, r *http.Request) {
	reasons := settlement.Reasons()
	out := make([]reasonInfo, 0, len(reasons))
	for _, reason := range reasons {
		out = append(out, reasonInfo{Reason: reason, Label: report.ReasonLabel(reason)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleSettlements(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSession(w, r)
	if !ok {
		return
	}

	key, err := cache.Key("settlements", req)
	if err != nil {
		log.Printf("[%s] %v", RequestID(r.Context()), err)
	}
	if key != "" {
		cached, hit, err := a.cache.Get(r.Context(), key)
		if err != nil {
			log.Printf("[%s] failed to read cached settlement: %v", RequestID(r.Context()), err)
		}
		if hit {
			w.Header().Set("X-Cache", "HIT")
			writeRaw(w, http.StatusOK, []byte(cached))
			return
		}
	}

	res := settlement.CalculateSettlements(req.Players, req.HouseFee)
	body, err := json.Marshal(res)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}

	if key != "" {
		if err := a.cache.Set(r.Context(), key, string(body)); err != nil {
			log.Printf("[%s] failed to cache settlement: %v", RequestID(r.Context()), err)
		}
	}
	w.Header().Set("X-Cache", "MISS")
	writeRaw(w, http.StatusOK, body)
}

func (a *API) handleGross(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSession(w, r)
	if !ok {
		return
	}

	gross := settlement.CalculateGross(req.Players, req.HouseFee)
	for name, v := range gross {
		gross[name] = settlement.Round2(v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"balances": gross})
}

func (a *API) handleObligations(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSession(w, r)
	if !ok {
		return
	}

	obligations := settlement.BuildObligations(req.Players, req.HouseFee)
	if obligations == nil {
		obligations = []settlement.Obligation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"obligations": obligations})
}

// decodeSession reads and validates the request body, writing a 400 on failure.
func decodeSession(w http.ResponseWriter, r *http.Request) (sessionRequest, bool) {
	var req sessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := settlement.Validate(req.Players, req.HouseFee); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
