package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/chrisq/qonnect-server/internal/config"
	"github.com/chrisq/qonnect-server/internal/middleware"
	"github.com/chrisq/qonnect-server/internal/qonnect"
	"github.com/chrisq/qonnect-server/internal/repository"
)

type GameHandler struct {
	log  *logrus.Logger
	repo *repository.Queries
	ws   *config.WebSocket
	rnd  *rand.Rand
}

func NewGameHandler(
	log *logrus.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:  log,
		repo: repository.New(db),
		ws:   ws,
		rnd:  rnd,
	}
}

// engineErrorStatus maps engine rejections onto HTTP statuses. Occupancy
// conflicts and post-game moves are conflicts with current state; the rest
// are bad requests.
func engineErrorStatus(err error) int {
	switch {
	case errors.Is(err, qonnect.ErrDuplicateLink),
		errors.Is(err, qonnect.ErrSessionOver):
		return http.StatusConflict
	case errors.Is(err, qonnect.ErrInvalidLink),
		errors.Is(err, qonnect.ErrIllegalGeneration),
		errors.Is(err, qonnect.ErrIllegalSwap),
		errors.Is(err, qonnect.ErrMissingLink):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	game, err := qonnect.NewGame(dto.GameParams())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		h.log.WithField("player", claims.Username).Debug("creating player session")
		playerId = &claims.PlayerId
	} else {
		h.log.Debug("creating anonymous session")
	}

	session, err := h.repo.CreateGameSession(r.Context(), game, playerId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to create game session")
		return
	}

	sendJSONOrLog(w, h.log, NewGameSessionDTO(session, game))
}

// fetchSession loads a session row and its engine state, writing the
// appropriate error response when it cannot.
func (h GameHandler) fetchSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *qonnect.GameState, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := h.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch session from db")
		return nil, nil, false
	}

	game, err := qonnect.DecodeGameState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("db returned invalid game_session.state")
		return nil, nil, false
	}

	return session, game, true
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game, ok := h.fetchSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.log, NewGameSessionDTO(session, game))
}

// applyAndSave runs one validated engine move against a loaded session and
// persists the outcome. Engine rejections surface unmodified in the JSON
// error body.
func (h GameHandler) applyAndSave(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, game *qonnect.GameState,
	move qonnect.Move,
) {
	if _, err := game.Apply(move, h.rnd); err != nil {
		w.WriteHeader(engineErrorStatus(err))
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	updated, err := h.repo.SaveGame(r.Context(), session, game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to update session in db")
		return
	}

	sendJSONOrLog(w, h.log, NewGameSessionDTO(updated, game))
}

func (h GameHandler) Generate(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseGenerateDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	session, game, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	h.applyAndSave(w, r, session, game, qonnect.Generate(dto.I, dto.J))
}

func (h GameHandler) Swap(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseSwapDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	session, game, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	// Raw pairs go straight to the engine, which canonicalizes and
	// validates them against the chain.
	a := qonnect.Link{A: dto.AI, B: dto.AJ}
	b := qonnect.Link{A: dto.BI, B: dto.BJ}
	h.applyAndSave(w, r, session, game, qonnect.Swap(a, b))
}

func (h GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, game, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	game.Forfeit()

	updated, err := h.repo.SaveGame(r.Context(), session, game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to update session in db")
		return
	}

	sendJSONOrLog(w, h.log, NewGameSessionDTO(updated, game))
}
