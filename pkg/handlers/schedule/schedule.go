package schedule

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/courtside/prop-auctions/pkg/schedule"
)

// ScheduleHandler holds the dependencies for game schedule lookups.
type ScheduleHandler struct {
	Source schedule.Source
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(source schedule.Source) *ScheduleHandler {
	return &ScheduleHandler{Source: source}
}

// GetGames handles the logic for listing the matchups on a given date.
// The date query parameter uses the 2006-01-02 form and defaults to today.
func (h *ScheduleHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid date: %v", err), http.StatusBadRequest)
			return
		}
		date = parsed
	}

	games, err := h.Source.GamesOn(r.Context(), date)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve games: %v", err), http.StatusInternalServerError)
		return
	}
	if games == nil {
		games = []schedule.Game{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(games); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetPlayers handles the logic for listing a team's roster.
func (h *ScheduleHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")
	if team == "" {
		http.Error(w, "team is required", http.StatusBadRequest)
		return
	}

	players, err := h.Source.Roster(r.Context(), team)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve roster: %v", err), http.StatusInternalServerError)
		return
	}
	if players == nil {
		players = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(players); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
