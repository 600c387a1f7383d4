package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/catalog"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/repository"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/usecase"
)

type testClient struct {
	t       *testing.T
	handler http.Handler
	stats   *metrics.Metrics
	cookie  *http.Cookie
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := repository.NewMemorySessionRepository(time.Hour)
	stats := metrics.New()

	games := usecase.NewGameManager(logger, repo, stats)
	products := usecase.NewProductManager(logger, repo, catalog.Default(), stats)

	return &testClient{
		t:       t,
		handler: New(logger, games, products, stats).Handler(),
		stats:   stats,
	}
}

func (that *testClient) do(method, target, body string) *httptest.ResponseRecorder {
	that.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if that.cookie != nil {
		req.AddCookie(that.cookie)
	}

	rec := httptest.NewRecorder()
	that.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			that.cookie = cookie
		}
	}

	return rec
}

func (that *testClient) game(rec *httptest.ResponseRecorder) gameResponse {
	that.t.Helper()

	require.Equal(that.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp gameResponse
	require.NoError(that.t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestPing(t *testing.T) {
	client := newTestClient(t)

	rec := client.do(http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	client := newTestClient(t)
	client.do(http.MethodGet, "/ping", "")

	rec := client.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tictactoe_http_requests_total")
}

func TestRequestMetrics(t *testing.T) {
	t.Run("Unknown paths share one series", func(t *testing.T) {
		client := newTestClient(t)

		// Given: many requests to paths no route matches
		for i := range 200 {
			rec := client.do(http.MethodGet, fmt.Sprintf("/no-such-page-%d", i), "")
			require.Equal(t, http.StatusNotFound, rec.Code)
		}

		// When: counting the request series
		count, err := testutil.GatherAndCount(client.stats.Registry(), "tictactoe_http_requests_total")

		// Then: they collapse into a single unmatched series
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Requests are labelled by route pattern", func(t *testing.T) {
		client := newTestClient(t)

		client.do(http.MethodGet, "/game", "")
		client.do(http.MethodPost, "/game/play?cell=0", "")
		client.do(http.MethodPost, "/game/play?cell=1", "")

		body := client.do(http.MethodGet, "/metrics", "").Body.String()

		assert.Contains(t, body, `path="GET /game"`)
		assert.Contains(t, body, `path="POST /game/play"`)
		assert.NotContains(t, body, "cell=")
	})
}

func TestSessionCookie(t *testing.T) {
	t.Run("Malformed cookie is replaced with a new session", func(t *testing.T) {
		client := newTestClient(t)
		client.cookie = &http.Cookie{Name: sessionCookieName, Value: "not-a-session"}

		resp := client.game(client.do(http.MethodGet, "/api/game", ""))

		assert.NotEqual(t, "not-a-session", client.cookie.Value)
		assert.Equal(t, client.cookie.Value, resp.SessionID)
	})

	t.Run("Issued cookie keeps the same session", func(t *testing.T) {
		client := newTestClient(t)
		first := client.game(client.do(http.MethodGet, "/api/game", ""))

		again := client.game(client.do(http.MethodGet, "/api/game", ""))

		assert.Equal(t, first.SessionID, again.SessionID)
	})
}

func TestAPIGame(t *testing.T) {
	t.Run("New visitor gets a session cookie and an empty board", func(t *testing.T) {
		client := newTestClient(t)

		// When: the game state is requested without a cookie
		resp := client.game(client.do(http.MethodGet, "/api/game", ""))

		// Then: a session is issued and X is next
		require.NotNil(t, client.cookie)
		assert.Equal(t, client.cookie.Value, resp.SessionID)
		assert.Equal(t, entity.Board{}, resp.Board)
		assert.Equal(t, "Next Player: X", resp.Status.Text)
		require.Len(t, resp.Moves, 1)
	})

	t.Run("Moves are kept in the session", func(t *testing.T) {
		client := newTestClient(t)

		// Given: X plays 0 and O plays 4
		client.game(client.do(http.MethodPost, "/api/game/play", `{"cell":0}`))
		resp := client.game(client.do(http.MethodPost, "/api/game/play", `{"cell":4}`))

		// Then: both moves are on the board
		assert.Equal(t, entity.PlayerX, resp.Board[0])
		assert.Equal(t, entity.PlayerO, resp.Board[4])
		assert.Equal(t, 2, resp.CurrentMove)

		// And: a later read returns the same state
		again := client.game(client.do(http.MethodGet, "/api/game", ""))
		assert.Equal(t, resp.Board, again.Board)
	})

	t.Run("Occupied cell is silently ignored", func(t *testing.T) {
		client := newTestClient(t)
		client.game(client.do(http.MethodPost, "/api/game/play", `{"cell":0}`))

		resp := client.game(client.do(http.MethodPost, "/api/game/play", `{"cell":0}`))

		assert.Equal(t, 1, resp.CurrentMove)
		assert.Len(t, resp.Moves, 2)
	})

	t.Run("Winning line is reported", func(t *testing.T) {
		client := newTestClient(t)

		var resp gameResponse
		for _, body := range []string{`{"cell":0}`, `{"cell":1}`, `{"cell":3}`, `{"cell":2}`, `{"cell":6}`} {
			resp = client.game(client.do(http.MethodPost, "/api/game/play", body))
		}

		assert.Equal(t, "Winner: X", resp.Status.Text)
		assert.Equal(t, []int{0, 3, 6}, resp.Status.WinLine)
	})

	t.Run("Jump then play truncates history", func(t *testing.T) {
		client := newTestClient(t)
		for _, body := range []string{`{"cell":0}`, `{"cell":1}`, `{"cell":2}`} {
			client.game(client.do(http.MethodPost, "/api/game/play", body))
		}

		jumped := client.game(client.do(http.MethodPost, "/api/game/jump", `{"move":0}`))
		assert.Len(t, jumped.Moves, 4)

		resp := client.game(client.do(http.MethodPost, "/api/game/play", `{"cell":8}`))
		assert.Len(t, resp.Moves, 2)
		assert.Equal(t, entity.PlayerX, resp.Board[8])
	})

	t.Run("Toggle reverses the move list", func(t *testing.T) {
		client := newTestClient(t)
		client.game(client.do(http.MethodPost, "/api/game/play", `{"cell":0}`))

		resp := client.game(client.do(http.MethodPost, "/api/game/toggle", ""))

		assert.False(t, resp.Ascending)
		assert.Equal(t, 1, resp.Moves[0].Move)
	})

	t.Run("Restart clears the board", func(t *testing.T) {
		client := newTestClient(t)
		client.game(client.do(http.MethodPost, "/api/game/play", `{"cell":0}`))

		resp := client.game(client.do(http.MethodPost, "/api/game/restart", ""))

		assert.Equal(t, entity.Board{}, resp.Board)
	})

	t.Run("Bad input", func(t *testing.T) {
		client := newTestClient(t)

		assert.Equal(t, http.StatusBadRequest, client.do(http.MethodPost, "/api/game/play", `{"cell":9}`).Code)
		assert.Equal(t, http.StatusBadRequest, client.do(http.MethodPost, "/api/game/play", `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, client.do(http.MethodPost, "/api/game/play", `{`).Code)
		assert.Equal(t, http.StatusBadRequest, client.do(http.MethodPost, "/api/game/jump", `{"move":3}`).Code)
	})
}

func TestAPIProducts(t *testing.T) {
	client := newTestClient(t)

	t.Run("Text filter", func(t *testing.T) {
		rec := client.do(http.MethodGet, "/api/products?q=pea", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var table usecase.ProductTable
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))

		assert.Equal(t, 1, table.Visible)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "Vegetables", table.Rows[0].Category)
		assert.Equal(t, "Peas", table.Rows[1].Product.Name)
	})

	t.Run("Stock filter", func(t *testing.T) {
		rec := client.do(http.MethodGet, "/api/products?stocked=true", "")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.NotContains(t, rec.Body.String(), "Passionfruit")
		assert.NotContains(t, rec.Body.String(), "Pumpkin")
		assert.Contains(t, rec.Body.String(), "Spinach")
	})

	t.Run("Bad stock flag", func(t *testing.T) {
		rec := client.do(http.MethodGet, "/api/products?stocked=maybe", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHTMLPages(t *testing.T) {
	t.Run("Index", func(t *testing.T) {
		client := newTestClient(t)

		rec := client.do(http.MethodGet, "/", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/game"`)
	})

	t.Run("Game form flow", func(t *testing.T) {
		client := newTestClient(t)

		// Given: the board page was opened
		page := client.do(http.MethodGet, "/game", "")
		require.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), "Next Player: X")
		assert.Contains(t, page.Body.String(), "X, you are at move 1")

		// When: the centre cell is clicked
		rec := client.do(http.MethodPost, "/game/play?cell=4", "")

		// Then: the browser is sent back to the board showing the move
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/game", rec.Header().Get("Location"))

		page = client.do(http.MethodGet, "/game", "")
		body := page.Body.String()
		assert.Contains(t, body, "Next Player: O")
		assert.Contains(t, body, "Go to game start")
		assert.Contains(t, body, "O, you are at move 2")
	})

	t.Run("Winning cells are highlighted", func(t *testing.T) {
		client := newTestClient(t)
		for _, cell := range []string{"0", "3", "1", "4", "2"} {
			client.do(http.MethodPost, "/game/play?cell="+cell, "")
		}

		body := client.do(http.MethodGet, "/game", "").Body.String()

		assert.Contains(t, body, "Winner: X")
		assert.Equal(t, 3, strings.Count(body, "square winner"))
	})

	t.Run("Jump link and bad jump", func(t *testing.T) {
		client := newTestClient(t)
		client.do(http.MethodPost, "/game/play?cell=4", "")

		assert.Equal(t, http.StatusSeeOther, client.do(http.MethodPost, "/game/jump?move=0", "").Code)
		assert.Equal(t, http.StatusBadRequest, client.do(http.MethodPost, "/game/jump?move=7", "").Code)
		assert.Equal(t, http.StatusBadRequest, client.do(http.MethodPost, "/game/play?cell=x", "").Code)
	})

	t.Run("Product filter is kept in the session", func(t *testing.T) {
		client := newTestClient(t)

		// When: the search form is submitted
		rec := client.do(http.MethodGet, "/products?q=pea", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Peas")
		assert.NotContains(t, rec.Body.String(), "Apple")

		// Then: a plain visit shows the same filter
		rec = client.do(http.MethodGet, "/products", "")
		assert.Contains(t, rec.Body.String(), `value="pea"`)
		assert.NotContains(t, rec.Body.String(), "Apple")
	})

	t.Run("Direct link applies the filter", func(t *testing.T) {
		client := newTestClient(t)

		// When: a shared link with both filter inputs is opened
		body := client.do(http.MethodGet, "/products?q=pea&stocked=on", "").Body.String()

		// Then: only the matching in-stock product is listed
		assert.Contains(t, body, "Peas")
		assert.NotContains(t, body, "Apple")
		assert.NotContains(t, body, "Pumpkin")
	})

	t.Run("Unchecked box clears the stock filter", func(t *testing.T) {
		client := newTestClient(t)
		client.do(http.MethodGet, "/products?q=&stocked=on", "")

		// When: the form is sent again with the box unchecked
		body := client.do(http.MethodGet, "/products?q=", "").Body.String()

		// Then: out-of-stock products are back
		assert.Contains(t, body, "Pumpkin")
		assert.NotContains(t, body, "checked")
	})

	t.Run("Out-of-stock products are marked and category shown once", func(t *testing.T) {
		client := newTestClient(t)

		body := client.do(http.MethodGet, "/products", "").Body.String()

		assert.Equal(t, 1, strings.Count(body, ">Vegetables<"))
		assert.Contains(t, body, `<span class="out-of-stock">Pumpkin</span>`)
	})

	t.Run("Stock only hides out-of-stock products", func(t *testing.T) {
		client := newTestClient(t)

		body := client.do(http.MethodGet, "/products?q=&stocked=on", "").Body.String()

		assert.NotContains(t, body, "Passionfruit")
		assert.NotContains(t, body, "Pumpkin")
		assert.Contains(t, body, "checked")
	})
}
