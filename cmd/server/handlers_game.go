package main

import (
	"errors"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"

	"github.com/mlsweep/minedata/internal/dataset"
	"github.com/mlsweep/minedata/internal/game"
)

var (
	dec = schema.NewDecoder()
	rnd = rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
)

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameParams struct {
	Rows      int `schema:"rows,required"`
	Cols      int `schema:"cols,required"`
	MineCount int `schema:"mine_count,required"`
}

type PosParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	var gameParams NewGameParams
	if err := dec.Decode(&gameParams, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	g, err := game.New(
		gameParams.Rows, gameParams.Cols, gameParams.MineCount, rnd,
	)
	if err != nil {
		var invalid game.InvalidConfigError
		if errors.As(err, &invalid) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(invalid.Error()))
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error(err)
		}
		return
	}
	var session *GameSession
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		log.Debug("creating session for player ", claims.Username)
		session, err = pg.CreateGameSession(r.Context(), &claims.PlayerId, g)
		refreshPlayerCookies(w, *claims)
	} else {
		log.Debug("creating anonymous session")
		session, err = pg.CreateGameSession(r.Context(), nil, g)
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

// fetchSession resolves the {id} path segment into a stored session, writing
// the appropriate status code when it cannot.
func fetchSession(w http.ResponseWriter, r *http.Request) (*GameSession, bool) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	session, err := pg.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return nil, false
	}
	return session, true
}

func handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

// handleGetSample extracts a model input/label pair from the current board.
// Finished games have no hidden cells left to predict, so they get a 409.
func handleGetSample(w http.ResponseWriter, r *http.Request) {
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	if session.Game.Status != game.InProgress {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("game is " + session.Game.Status.String()))
		return
	}
	snapshot := session.Game.Snapshot()
	sample := dataset.Extract(snapshot)
	if _, err := sendJSON(w, sample); err != nil {
		log.Error(err)
	}
}

type cellAction func(g *game.Game, row, col int) error

func handleCellAction(w http.ResponseWriter, r *http.Request, action cellAction) {
	var posParams PosParams
	if err := dec.Decode(&posParams, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	if err := action(session.Game, posParams.Row, posParams.Col); err != nil {
		var invalid game.InvalidActionError
		if errors.As(err, &invalid) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(invalid.Error()))
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error(err)
		}
		return
	}
	session.finish()
	if err := pg.UpdateGameSession(r.Context(), session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleReveal(w http.ResponseWriter, r *http.Request) {
	handleCellAction(w, r, (*game.Game).Reveal)
}

func handleFlag(w http.ResponseWriter, r *http.Request) {
	handleCellAction(w, r, (*game.Game).Flag)
}

func handleUnflag(w http.ResponseWriter, r *http.Request) {
	handleCellAction(w, r, (*game.Game).Unflag)
}

func handleChord(w http.ResponseWriter, r *http.Request) {
	handleCellAction(w, r, (*game.Game).Chord)
}

// Accepts newline-separated commands transferred via body of following syntax:
//
//	r row col // reveal a square at row:col
//	c row col // chord a square at row:col
//	f row col // flag a square at row:col
//	u row col // unflag a square at row:col
//
// Commands are interpreted in the order they are listed. If any command ends
// the game, interpretation stops and game state is returned immediately. If
// any command is malformed, all changes to game state are dropped and the
// response carries [http.StatusBadRequest] with the command's line number and
// an error message.
func handleBatch(w http.ResponseWriter, r *http.Request) {
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	lines := strings.TrimSpace(string(body))
	for i, c := range byPiece(lines, "\n") {
		if err := executeCommand(session.Game, c); err != nil {
			payload := struct {
				Loc     int    `json:"loc"`
				Message string `json:"message"`
			}{i, err.Error()}
			w.WriteHeader(http.StatusBadRequest)
			if _, err := sendJSON(w, payload); err != nil {
				log.Error(err)
			}
			return
		}
		if session.Game.Status != game.InProgress {
			break
		}
	}
	session.finish()
	if err := pg.UpdateGameSession(r.Context(), session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}
