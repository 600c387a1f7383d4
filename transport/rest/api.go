package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
)

type playRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

type gameResponse struct {
	SessionID   string             `json:"session_id"`
	Board       entity.Board       `json:"board"`
	CurrentMove int                `json:"current_move"`
	Ascending   bool               `json:"ascending"`
	Status      entity.GameStatus  `json:"status"`
	Moves       []entity.MoveEntry `json:"moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newGameResponse(session *entity.Session) gameResponse {
	return gameResponse{
		SessionID:   session.ID,
		Board:       session.Game.CurrentBoard(),
		CurrentMove: session.Game.CurrentMove,
		Ascending:   session.Game.Ascending,
		Status:      session.Game.Status(),
		Moves:       session.Game.Moves(),
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, code int, err error) {
	that.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (that *Server) handleAPIGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.session(w, r)
	if err != nil {
		that.writeError(w, http.StatusInternalServerError, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(session))
}

func (that *Server) handleAPIPlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return
	}

	if req.Cell == nil {
		that.writeError(w, http.StatusBadRequest, errors.New("cell is required"))
		return
	}

	that.apiGameAction(w, r, func(sessionID string) (*entity.Session, error) {
		return that.games.Play(r.Context(), sessionID, *req.Cell)
	})
}

func (that *Server) handleAPIJump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return
	}

	if req.Move == nil {
		that.writeError(w, http.StatusBadRequest, errors.New("move is required"))
		return
	}

	that.apiGameAction(w, r, func(sessionID string) (*entity.Session, error) {
		return that.games.JumpTo(r.Context(), sessionID, *req.Move)
	})
}

func (that *Server) handleAPIToggle(w http.ResponseWriter, r *http.Request) {
	that.apiGameAction(w, r, func(sessionID string) (*entity.Session, error) {
		return that.games.ToggleOrder(r.Context(), sessionID)
	})
}

func (that *Server) handleAPIRestart(w http.ResponseWriter, r *http.Request) {
	that.apiGameAction(w, r, func(sessionID string) (*entity.Session, error) {
		return that.games.Restart(r.Context(), sessionID)
	})
}

func (that *Server) apiGameAction(w http.ResponseWriter, r *http.Request, action func(sessionID string) (*entity.Session, error)) {
	session, err := that.session(w, r)
	if err != nil {
		that.writeError(w, http.StatusInternalServerError, err)
		return
	}

	updated, err := action(session.ID)
	if err != nil {
		if isBadInput(err) {
			that.writeError(w, http.StatusBadRequest, err)
			return
		}

		that.logger.Error("game action failed", "error", err)
		that.writeError(w, http.StatusInternalServerError, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(updated))
}

// handleAPIProducts - filters the catalog from query parameters; no session state is involved.
func (that *Server) handleAPIProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var inStockOnly bool
	if raw := query.Get("stocked"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			that.writeError(w, http.StatusBadRequest, errors.New("stocked must be a boolean"))
			return
		}
		inStockOnly = parsed
	}

	table := that.products.Query(entity.ProductFilter{
		Text:        query.Get("q"),
		InStockOnly: inStockOnly,
	})

	that.writeJSON(w, http.StatusOK, table)
}
