package entity

// Session holds the state of one visitor: the game history and the product filter.
type Session struct {
	ID     string        `json:"id"`
	Game   *History      `json:"game"`
	Filter ProductFilter `json:"filter"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Game: NewHistory(),
	}
}

// RestartGame - drops the whole history and starts from the empty board. Move order is kept.
func (that *Session) RestartGame() {
	ascending := true
	if that.Game != nil {
		ascending = that.Game.Ascending
	}

	that.Game = NewHistory()
	that.Game.Ascending = ascending
}
