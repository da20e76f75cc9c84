package handlers

import (
	"net/url"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/chrisq/qonnect-server/internal/qonnect"
	"github.com/chrisq/qonnect-server/internal/repository"
)

func newQueryDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// CreateGameDTO carries the session parameters from the query string.
// Optional knobs default to the classic deterministic game: endpoints at
// the chain ends, no decay, certain operations.
type CreateGameDTO struct {
	ChainLength  int      `schema:"chain_length,required"`
	EndpointA    *int     `schema:"endpoint_a"`
	EndpointB    *int     `schema:"endpoint_b"`
	LinkLifetime *int     `schema:"link_lifetime"`
	GenProb      *float64 `schema:"gen_prob"`
	SwapProb     *float64 `schema:"swap_prob"`
}

func ParseCreateGameDTO(src url.Values) (CreateGameDTO, error) {
	var dto CreateGameDTO
	err := newQueryDecoder().Decode(&dto, src)
	return dto, err
}

func (dto CreateGameDTO) GameParams() qonnect.GameParams {
	params := qonnect.GameParams{
		ChainLength: dto.ChainLength,
		EndpointA:   0,
		EndpointB:   dto.ChainLength - 1,
		GenProb:     1,
		SwapProb:    1,
	}
	if dto.EndpointA != nil {
		params.EndpointA = *dto.EndpointA
	}
	if dto.EndpointB != nil {
		params.EndpointB = *dto.EndpointB
	}
	if dto.LinkLifetime != nil {
		params.LinkLifetime = *dto.LinkLifetime
	}
	if dto.GenProb != nil {
		params.GenProb = *dto.GenProb
	}
	if dto.SwapProb != nil {
		params.SwapProb = *dto.SwapProb
	}
	return params
}

type GenerateDTO struct {
	I int `schema:"i,required"`
	J int `schema:"j,required"`
}

func ParseGenerateDTO(src url.Values) (GenerateDTO, error) {
	var dto GenerateDTO
	err := newQueryDecoder().Decode(&dto, src)
	return dto, err
}

type SwapDTO struct {
	AI int `schema:"ai,required"`
	AJ int `schema:"aj,required"`
	BI int `schema:"bi,required"`
	BJ int `schema:"bj,required"`
}

func ParseSwapDTO(src url.Values) (SwapDTO, error) {
	var dto SwapDTO
	err := newQueryDecoder().Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionId string `json:"game_session_id"`
	qonnect.GameParams
	Links     [][2]int `json:"links"`
	Moves     []string `json:"moves"`
	MoveCount int      `json:"move_count"`
	Won       bool     `json:"won"`
	Over      bool     `json:"over"`
	StartedAt int64    `json:"started_at"`
	EndedAt   *int64   `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, game *qonnect.GameState,
) *GameSessionDTO {
	links := make([][2]int, 0, len(game.Links))
	for _, l := range game.ActiveLinks() {
		links = append(links, [2]int{l.A, l.B})
	}
	moves := make([]string, 0, len(game.Moves))
	for _, m := range game.Moves {
		moves = append(moves, m.String())
	}
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		GameParams:    game.GameParams,
		Links:         links,
		Moves:         moves,
		MoveCount:     game.MoveCount,
		Won:           game.Won,
		Over:          game.Over,
		StartedAt:     session.StartedAt.Time.UnixMilli(),
	}
	if session.EndedAt.Valid {
		e := session.EndedAt.Time.UnixMilli()
		dto.EndedAt = &e
	}
	return dto
}
