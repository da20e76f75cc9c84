package handlers

import (
	"net/http"

	"github.com/chrisq/qonnect-server/internal/qonnect"
	"github.com/chrisq/qonnect-server/internal/repository"
)

type highscoreFilterDTO struct {
	Username *string `schema:"username"`
	Seed     *string `schema:"seed"`
}

// Highscores lists won sessions ranked by move count, optionally filtered
// by player and by game params seed (see GameParams.Seed).
func (h GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	var dto highscoreFilterDTO
	if err := newQueryDecoder().Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	filter := repository.HighscoreFilter{Username: dto.Username}
	if dto.Seed != nil {
		params, err := qonnect.ParseSeed(*dto.Seed)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.log, wrapError(err))
			return
		}
		filter.GameParams = params
	}

	highscores, err := h.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch highscores")
		return
	}

	sendJSONOrLog(w, h.log, highscores)
}
