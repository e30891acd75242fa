package api

import (
	"encoding/json"
	stderrors "errors"
	"mood-chat/auth"
	"mood-chat/domain"
	"mood-chat/errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type tokenResponse struct {
	Token string `json:"token"`
}

type incidentResponse struct {
	ID       string   `json:"id"`
	Room     string   `json:"room"`
	Keywords []string `json:"keywords"`
	Lang     string   `json:"lang"`
	Outcome  string   `json:"outcome"`
	Score    float64  `json:"score"`
	At       string   `json:"at"`
}

type keywordsRequest struct {
	Phrases []string `json:"phrases"`
}

type keywordsResponse struct {
	Phrases []string `json:"phrases"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (r *router) handleStats(w http.ResponseWriter, req *http.Request) {
	stats, err := r.Chat.Stats(req.Context())
	if err != nil {
		http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, r.Monitor.Update(stats))
}

func (r *router) handleToken(w http.ResponseWriter, req *http.Request) {
	var body auth.LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	token, err := r.Auth.Login(body.Password)
	switch {
	case stderrors.Is(err, errors.ErrInvalidCredentials):
		r.Log.Info("Rejected admin login", "remote", req.RemoteAddr)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	case err != nil:
		r.Log.Error("Token generation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token.String()})
}

func (r *router) handleIncidents(w http.ResponseWriter, req *http.Request) {
	limit := 0
	if raw := req.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	incidents, err := r.Incidents.Search(req.Context(), req.URL.Query().Get("q"), limit)
	if err != nil {
		r.Log.Error("Incident search failed", "error", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(incidents, func(i domain.Incident, _ int) incidentResponse {
		return incidentResponse{
			ID:       i.ID.String(),
			Room:     string(i.Room),
			Keywords: i.Keywords,
			Lang:     i.Lang,
			Outcome:  string(i.Outcome),
			Score:    i.Score,
			At:       i.At.UTC().Format(time.RFC3339),
		}
	}))
}

func (r *router) handleListKeywords(w http.ResponseWriter, _ *http.Request) {
	phrases, err := r.Keywords.List()
	if err != nil {
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, keywordsResponse{Phrases: lo.Ternary(phrases == nil, []string{}, phrases)})
}

func (r *router) handleAddKeywords(w http.ResponseWriter, req *http.Request) {
	var body keywordsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || len(body.Phrases) == 0 {
		http.Error(w, "phrases are required", http.StatusBadRequest)
		return
	}
	if err := r.Keywords.Add(body.Phrases...); err != nil {
		r.Log.Error("Failed to store keywords", "error", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	r.reloadAndRespond(w)
}

func (r *router) handleRemoveKeyword(w http.ResponseWriter, req *http.Request) {
	phrase, err := url.PathUnescape(chi.URLParam(req, "phrase"))
	if err != nil {
		http.Error(w, "invalid phrase", http.StatusBadRequest)
		return
	}
	if err := r.Keywords.Remove(phrase); err != nil {
		if stderrors.Is(err, errors.ErrLastKeyword) {
			http.Error(w, "cannot remove the last phrase", http.StatusConflict)
			return
		}
		r.Log.Error("Failed to remove keyword", "error", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	r.reloadAndRespond(w)
}

func (r *router) reloadAndRespond(w http.ResponseWriter) {
	phrases, err := r.Keywords.List()
	if err != nil {
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	if err := r.Gate.Reload(phrases); err != nil {
		r.Log.Error("Keyword reload failed", "error", err)
		http.Error(w, "keyword reload failed", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, keywordsResponse{Phrases: phrases})
}
