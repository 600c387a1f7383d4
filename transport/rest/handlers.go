package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
)

func (that *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := that.templates.ExecuteTemplate(w, name, data); err != nil {
		that.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	that.render(w, "index.tmpl", nil)
}

func (that *Server) handleGamePage(w http.ResponseWriter, r *http.Request) {
	session, err := that.session(w, r)
	if err != nil {
		that.internalError(w, "handleGamePage", err)
		return
	}

	that.render(w, "game.tmpl", newGameView(session.Game))
}

func (that *Server) handleGamePlay(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(r.URL.Query().Get("cell"))
	if err != nil {
		http.Error(w, "cell must be a number", http.StatusBadRequest)
		return
	}

	that.gameAction(w, r, "handleGamePlay", func(sessionID string) error {
		_, err := that.games.Play(r.Context(), sessionID, cell)
		return err
	})
}

func (that *Server) handleGameJump(w http.ResponseWriter, r *http.Request) {
	move, err := strconv.Atoi(r.URL.Query().Get("move"))
	if err != nil {
		http.Error(w, "move must be a number", http.StatusBadRequest)
		return
	}

	that.gameAction(w, r, "handleGameJump", func(sessionID string) error {
		_, err := that.games.JumpTo(r.Context(), sessionID, move)
		return err
	})
}

func (that *Server) handleGameToggle(w http.ResponseWriter, r *http.Request) {
	that.gameAction(w, r, "handleGameToggle", func(sessionID string) error {
		_, err := that.games.ToggleOrder(r.Context(), sessionID)
		return err
	})
}

func (that *Server) handleGameRestart(w http.ResponseWriter, r *http.Request) {
	that.gameAction(w, r, "handleGameRestart", func(sessionID string) error {
		_, err := that.games.Restart(r.Context(), sessionID)
		return err
	})
}

// gameAction - runs a form action against the session and redirects back to the board.
func (that *Server) gameAction(w http.ResponseWriter, r *http.Request, method string, action func(sessionID string) error) {
	session, err := that.session(w, r)
	if err != nil {
		that.internalError(w, method, err)
		return
	}

	if err = action(session.ID); err != nil {
		if isBadInput(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		that.internalError(w, method, err)
		return
	}

	http.Redirect(w, r, "/game", http.StatusSeeOther)
}

func (that *Server) handleProductsPage(w http.ResponseWriter, r *http.Request) {
	session, err := that.session(w, r)
	if err != nil {
		that.internalError(w, "handleProductsPage", err)
		return
	}

	query := r.URL.Query()

	// the search form always sends q, so an unchecked box still counts as a submission
	if !query.Has("q") && !query.Has("stocked") {
		that.render(w, "products.tmpl", newProductsView(that.products.Query(session.Filter)))
		return
	}

	filter := entity.ProductFilter{
		Text:        query.Get("q"),
		InStockOnly: query.Get("stocked") == "on",
	}

	table, err := that.products.SetFilter(r.Context(), session.ID, filter)
	if err != nil {
		that.internalError(w, "handleProductsPage", err)
		return
	}

	that.render(w, "products.tmpl", newProductsView(table))
}

func (that *Server) internalError(w http.ResponseWriter, method string, err error) {
	that.logger.Error("request failed", "method", method, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func isBadInput(err error) bool {
	return errors.Is(err, entity.ErrInvalidCell) || errors.Is(err, entity.ErrMoveOutOfRange)
}
