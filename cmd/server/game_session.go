package main

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/mlsweep/minedata/internal/game"
)

type GameSession struct {
	SessionId int
	PlayerId  *int
	Game      *game.Game
	StartedAt time.Time
	EndedAt   time.Time
}

type GameSessionJSON struct {
	SessionId string           `json:"session_id"`
	Rows      int              `json:"rows"`
	Cols      int              `json:"cols"`
	MineCount int              `json:"mine_count"`
	Status    string           `json:"status"`
	View      []game.CellValue `json:"view"`
	StartedAt int64            `json:"started_at"`
	EndedAt   *int64           `json:"ended_at,omitempty"`
}

func (s GameSession) MarshalJSON() ([]byte, error) {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return json.Marshal(GameSessionJSON{
		SessionId: strconv.Itoa(s.SessionId),
		Rows:      s.Game.Rows,
		Cols:      s.Game.Cols,
		MineCount: s.Game.MineCount,
		Status:    s.Game.Status.String(),
		View:      s.Game.View,
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	})
}

// finish stamps the end time once the game leaves the in-progress state.
func (s *GameSession) finish() {
	if s.Game.Status != game.InProgress && s.EndedAt.IsZero() {
		s.EndedAt = time.Now().UTC()
		archiveSnapshot(s)
	}
}
