package rest

import (
	"embed"
	"html/template"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/usecase"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}

type cellView struct {
	Index  int
	Value  string
	Winner bool
}

type gameView struct {
	Status entity.GameStatus
	Rows   [][]cellView
	Moves  []entity.MoveEntry
}

func newGameView(history *entity.History) gameView {
	board := history.CurrentBoard()
	rows := make([][]cellView, 0, entity.BoardRows)

	for row := 0; row < entity.BoardRows; row++ {
		cells := make([]cellView, 0, entity.BoardColumns)
		for column := 0; column < entity.BoardColumns; column++ {
			index := row*entity.BoardColumns + column
			cells = append(cells, cellView{
				Index:  index,
				Value:  board[index],
				Winner: board.IsWinningCell(index),
			})
		}
		rows = append(rows, cells)
	}

	return gameView{
		Status: history.Status(),
		Rows:   rows,
		Moves:  history.Moves(),
	}
}

type productsView struct {
	Filter entity.ProductFilter
	Rows   []entity.ProductRow
}

func newProductsView(table *usecase.ProductTable) productsView {
	return productsView{
		Filter: table.Filter,
		Rows:   table.Rows,
	}
}
