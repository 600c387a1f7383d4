package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/pkg"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameMetrics interface {
	MoveAccepted()
	GameFinished(result string)
}

type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	metrics     gameMetrics
	locks       *sessionLocks
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, stats gameMetrics) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		metrics:     stats,
		locks:       newSessionLocks(),
	}
}

// GetOrCreateSession - returns the stored session, or a fresh one when id is empty or unknown.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	return getOrCreateSession(ctx, that.logger, that.sessionRepo, id)
}

func (that *GameManager) Play(ctx context.Context, sessionID string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "Play", "session", sessionID, "cell", cell)

	unlock := that.locks.lock(sessionID)
	defer unlock()

	session, err := that.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = session.Game.Play(cell); err != nil {
		if apperror.IsRejectedMove(err) {
			log.Debug("move ignored", "reason", err)

			return session, nil
		}

		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.metrics.MoveAccepted()

	status := session.Game.Status()
	switch {
	case status.Winner != "":
		that.metrics.GameFinished(status.Winner)
		log.Info("game won", "winner", status.Winner)
	case status.Draw:
		that.metrics.GameFinished(metrics.ResultDraw)
		log.Info("game drawn")
	}

	return session, nil
}

func (that *GameManager) JumpTo(ctx context.Context, sessionID string, move int) (*entity.Session, error) {
	unlock := that.locks.lock(sessionID)
	defer unlock()

	session, err := that.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = session.Game.JumpTo(move); err != nil {
		return nil, fmt.Errorf("failed jump to move: %w", err)
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *GameManager) ToggleOrder(ctx context.Context, sessionID string) (*entity.Session, error) {
	unlock := that.locks.lock(sessionID)
	defer unlock()

	session, err := that.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Game.ToggleOrder()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *GameManager) Restart(ctx context.Context, sessionID string) (*entity.Session, error) {
	unlock := that.locks.lock(sessionID)
	defer unlock()

	session, err := that.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.RestartGame()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *GameManager) getSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func getOrCreateSession(ctx context.Context, logger *slog.Logger, repo sessionRepo, id string) (*entity.Session, error) {
	log := logger.With("method", "getOrCreateSession")

	if id != "" {
		session, err := repo.GetByID(ctx, id)
		if err == nil {
			return session, nil
		}

		if !errors.Is(err, apperror.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to get session: %w", err)
		}

		log.Info("session expired or unknown, starting a new one", "session", id)
	}

	session := entity.NewSession(pkg.GenerateNewSessionID())
	if err := repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}
