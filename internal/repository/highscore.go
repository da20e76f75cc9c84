package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/chrisq/qonnect-server/internal/qonnect"
)

// Highscore ranks won sessions by how few moves reached end-to-end
// entanglement.
type Highscore struct {
	GameSessionId string  `json:"game_session_id"`
	Username      *string `json:"username"`
	ChainLength   int     `json:"chain_length"`
	EndpointA     int     `json:"endpoint_a"`
	EndpointB     int     `json:"endpoint_b"`
	LinkLifetime  int     `json:"link_lifetime"`
	GenProb       float64 `json:"gen_prob"`
	SwapProb      float64 `json:"swap_prob"`
	MoveCount     int     `json:"move_count"`
}

type HighscoreFilter struct {
	Username   *string
	GameParams *qonnect.GameParams
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"chain_length = @chain_length",
			"endpoint_a = @endpoint_a",
			"endpoint_b = @endpoint_b",
			"link_lifetime = @link_lifetime",
			"gen_prob = @gen_prob",
			"swap_prob = @swap_prob",
		)
		args["chain_length"] = f.GameParams.ChainLength
		args["endpoint_a"] = f.GameParams.EndpointA
		args["endpoint_b"] = f.GameParams.EndpointB
		args["link_lifetime"] = f.GameParams.LinkLifetime
		args["gen_prob"] = f.GameParams.GenProb
		args["swap_prob"] = f.GameParams.SwapProb
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_session_id::text,
		username,
		chain_length,
		endpoint_a,
		endpoint_b,
		link_lifetime,
		gen_prob,
		swap_prob,
		move_count
	FROM game_session
		LEFT OUTER JOIN player using (player_id)
	WHERE
		won = true
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY move_count;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
