package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
)

type GameRecord struct {
	GameSessionId string  `json:"session_id"`
	Username      *string `json:"username"`
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	MineCount     int     `json:"mine_count"`
	Playtime      float64 `json:"playtime"`
}

type GameRecordFilters struct {
	username    *string
	boardParams *NewGameParams
}

func (f GameRecordFilters) WhereClause() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	whereClauses := []string{}
	if f.username != nil {
		args["username"] = &f.username
		whereClauses = append(whereClauses, "username = @username")
	}
	if f.boardParams != nil {
		args["rows"] = &f.boardParams.Rows
		args["cols"] = &f.boardParams.Cols
		args["mineCount"] = &f.boardParams.MineCount
		whereClauses = append(
			whereClauses,
			`"rows" = @rows`,
			"cols = @cols",
			"mine_count = @mineCount",
		)
	}

	if len(whereClauses) == 0 {
		return "", args
	}
	return strings.Join(whereClauses, " and "), args
}

type GameRecordsOption = func(*GameRecordFilters) error

func GameRecordsForPlayer(username string) GameRecordsOption {
	return func(f *GameRecordFilters) error {
		f.username = &username
		return nil
	}
}

func GameRecordsForBoard(params *NewGameParams) GameRecordsOption {
	return func(f *GameRecordFilters) error {
		f.boardParams = params
		return nil
	}
}

func getGameRecords(
	ctx context.Context, options ...GameRecordsOption,
) ([]GameRecord, error) {
	filters := &GameRecordFilters{}
	for _, op := range options {
		err := op(filters)
		if err != nil {
			return nil, err
		}
	}

	sql := `
	select
		game_session_id
		, username
		, "rows"
		, cols
		, mine_count
		, (
			extract('epoch' from ended_at) - extract('epoch' from started_at)
		) * 1000 playtime
	from game_session
		left outer join player using (player_id)
	where
		status = 'won'
		and ended_at is not null`

	whereClause, args := filters.WhereClause()
	if whereClause != "" {
		sql += " and " + whereClause
	}

	sql += " order by playtime"

	rows, err := pg.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameRecord])
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	options := []GameRecordsOption{}
	if query.Has("username") {
		options = append(options, GameRecordsForPlayer(query.Get("username")))
	}
	if query.Has("rows") {
		var boardParams NewGameParams
		if err := dec.Decode(&boardParams, query); err != nil {
			log.Debug(err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		options = append(options, GameRecordsForBoard(&boardParams))
	}
	records, err := getGameRecords(r.Context(), options...)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}

func handleGetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	records, err := getGameRecords(
		r.Context(), GameRecordsForPlayer(claims.Username),
	)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}
