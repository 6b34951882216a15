package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/verible/verible-cli/pkg/api"
	"github.com/verible/verible-cli/pkg/history"
	"github.com/verible/verible-cli/pkg/trustview"
)

func (s *Server) handleSellers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := history.ListOptions{
		Platform:     q.Get("platform"),
		SearchFilter: q.Get("search"),
	}

	sellers, err := s.DB.ListLatest(r.Context(), opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(sellers)
}

func (s *Server) handleSellerHistory(w http.ResponseWriter, r *http.Request) {
	profileURL := r.URL.Query().Get("url")
	if profileURL == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}

	snapshots, err := s.DB.ListSnapshots(r.Context(), profileURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(snapshots)
}

func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	changes, err := s.DB.ListRecentChanges(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(changes)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.DB.GetStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(stats)
}

// handleCurrent returns the most recently refreshed seller view, if any.
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	view := s.refreshSlot.Current()
	if view == nil {
		http.Error(w, "no seller refreshed yet", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(view)
}

type RefreshRequest struct {
	ProfileURL string `json:"profileUrl"`
}

// handleRefresh fetches a fresh score for a profile URL, records the
// snapshot and returns the normalized view. Concurrent refreshes race
// last-write-wins into the current-seller slot, so a slow older fetch never
// clobbers a newer one.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProfileURL == "" {
		http.Error(w, "missing profileUrl", http.StatusBadRequest)
		return
	}

	seq := s.refreshSlot.Begin()

	raw, err := s.Client.ScoreByURL(r.Context(), req.ProfileURL)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			http.Error(w, apiErr.Error(), http.StatusBadGateway)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view := trustview.Normalize(raw.Body, trustview.Context{LoggedIn: s.Client.HasToken()})
	s.refreshSlot.Publish(seq, view)

	if _, err := s.DB.RecordView(r.Context(), req.ProfileURL, view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(view)
}
