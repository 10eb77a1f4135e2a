package main

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlsweep/minedata/internal/game"
)

type postgres struct {
	db *pgxpool.Pool
}

type Player struct {
	PlayerId     int
	Username     string
	PasswordHash []byte
}

func (pg *postgres) Ping(ctx context.Context) error {
	return pg.db.Ping(ctx)
}

func (pg *postgres) Close() {
	pg.db.Close()
}

func (pg *postgres) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	var playerId int
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO player (
			username, password_hash
		)
		VALUES (
			@username, @password_hash
		)
		RETURNING player_id`,
		pgx.NamedArgs{
			"username":      username,
			"password_hash": passwordHash,
		}).Scan(&playerId); err != nil {
		return nil, err
	}
	player := &Player{
		PlayerId: playerId,
		Username: username,
	}
	return player, nil
}

func (pg *postgres) GetPlayer(
	ctx context.Context, username string,
) (*Player, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT player_id, username, password_hash
		FROM player
		WHERE username = $1;`,
		username)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

func encodeGame(g *game.Game) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pg *postgres) CreateGameSession(
	ctx context.Context, playerId *int, g *game.Game,
) (*GameSession, error) {
	state, err := encodeGame(g)
	if err != nil {
		return nil, err
	}
	var (
		gameSessionId int
		startedAt     time.Time
	)
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO game_session (
			player_id, "rows", cols, mine_count, status, state
		)
		VALUES (
			@player_id, @rows, @cols, @mine_count, @status, @state
		)
		RETURNING game_session_id, started_at;`,
		pgx.NamedArgs{
			"player_id":  playerId,
			"rows":       g.Rows,
			"cols":       g.Cols,
			"mine_count": g.MineCount,
			"status":     g.Status.String(),
			"state":      state,
		}).Scan(&gameSessionId, &startedAt); err != nil {
		return nil, err
	}
	session := &GameSession{
		SessionId: gameSessionId,
		PlayerId:  playerId,
		Game:      g,
		StartedAt: startedAt,
	}
	return session, nil
}

func (pg *postgres) GetSession(
	ctx context.Context, gameSessionId int,
) (*GameSession, error) {
	var (
		stateBuf  []byte
		playerId  *int
		startedAt time.Time
		endedAt   pgtype.Timestamptz
	)
	if err := pg.db.QueryRow(ctx, `
		SELECT player_id, state, started_at, ended_at
		FROM game_session
		WHERE game_session_id = $1;`,
		gameSessionId).Scan(
		&playerId, &stateBuf, &startedAt, &endedAt,
	); err != nil {
		return nil, err
	}
	var g game.Game
	if err := gob.NewDecoder(bytes.NewBuffer(stateBuf)).Decode(&g); err != nil {
		return nil, err
	}
	gameSession := &GameSession{
		SessionId: gameSessionId,
		PlayerId:  playerId,
		Game:      &g,
		StartedAt: startedAt,
		EndedAt:   endedAt.Time,
	}
	return gameSession, nil
}

func (pg *postgres) UpdateGameSession(
	ctx context.Context, gameSession *GameSession,
) error {
	state, err := encodeGame(gameSession.Game)
	if err != nil {
		return err
	}
	_, err = pg.db.Exec(ctx, `
		UPDATE game_session
		SET status = @status
			, ended_at = @ended_at
			, state = @state
		WHERE game_session_id = @game_session_id;`,
		pgx.NamedArgs{
			"game_session_id": gameSession.SessionId,
			"status":          gameSession.Game.Status.String(),
			"ended_at": pgtype.Timestamptz{
				Time:  gameSession.EndedAt,
				Valid: !gameSession.EndedAt.IsZero(),
			},
			"state":           state,
		})
	return err
}
