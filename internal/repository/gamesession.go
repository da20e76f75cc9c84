package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/chrisq/qonnect-server/internal/qonnect"
)

type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	ChainLength   int
	EndpointA     int
	EndpointB     int
	LinkLifetime  int
	GenProb       float64
	SwapProb      float64
	Won           bool
	Over          bool
	MoveCount     int
	State         []byte
	StartedAt     pgtype.Timestamptz
	EndedAt       pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (q Queries) CreateGameSession(
	ctx context.Context, game *qonnect.GameState, playerId *int64,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"chain_length":  game.ChainLength,
		"endpoint_a":    game.EndpointA,
		"endpoint_b":    game.EndpointB,
		"link_lifetime": game.LinkLifetime,
		"gen_prob":      game.GenProb,
		"swap_prob":     game.SwapProb,
		"won":           game.Won,
		"over":          game.Over,
		"move_count":    game.MoveCount,
		"state":         state,
	}
	if playerId != nil {
		args["player_id"] = *playerId
	} else {
		args["player_id"] = nil
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, chain_length, endpoint_a, endpoint_b,
			link_lifetime, gen_prob, swap_prob, won, "over", move_count, state
		)
		VALUES (
			@player_id, @chain_length, @endpoint_a, @endpoint_b,
			@link_lifetime, @gen_prob, @swap_prob, @won, @over, @move_count, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q Queries) FetchGameSession(ctx context.Context, gameSessionId int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Won       *bool
	Over      *bool
	MoveCount *int
	EndedAt   *time.Time
	State     *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, pgx.NamedArgs) {
	parts := []string{"updated_at = now()"}
	args := pgx.NamedArgs{}

	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.Over != nil {
		parts = append(parts, `"over" = @over`)
		args["over"] = *p.Over
	}
	if p.MoveCount != nil {
		parts = append(parts, "move_count = @move_count")
		args["move_count"] = *p.MoveCount
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	args["game_session_id"] = gameSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+
			" WHERE game_session_id = @game_session_id RETURNING *",
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// SaveGame persists the current engine state of an existing session,
// stamping ended_at the first time the session finishes.
func (q Queries) SaveGame(
	ctx context.Context, session *GameSession, game *qonnect.GameState,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}
	params := UpdateGameSessionParams{
		Won:       &game.Won,
		Over:      &game.Over,
		MoveCount: &game.MoveCount,
		State:     &state,
	}
	if game.Over && !session.EndedAt.Valid {
		now := time.Now().UTC()
		params.EndedAt = &now
	}
	return q.UpdateGameSession(ctx, session.GameSessionId, params)
}
