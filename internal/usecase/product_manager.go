package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/entity"
)

type productCatalog interface {
	Products() []entity.Product
}

type productMetrics interface {
	ProductQuery()
}

// ProductTable is the filtered, grouped view of the catalog for one session.
type ProductTable struct {
	Filter  entity.ProductFilter `json:"filter"`
	Rows    []entity.ProductRow  `json:"rows"`
	Visible int                  `json:"visible"`
}

type ProductManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	catalog     productCatalog
	metrics     productMetrics
}

func NewProductManager(logger *slog.Logger, sessionRepo sessionRepo, catalog productCatalog, stats productMetrics) *ProductManager {
	return &ProductManager{
		logger:      logger.With("component", "product_manager"),
		sessionRepo: sessionRepo,
		catalog:     catalog,
		metrics:     stats,
	}
}

func (that *ProductManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	return getOrCreateSession(ctx, that.logger, that.sessionRepo, id)
}

// Table - recomputes the visible table from the catalog and the session's filter.
func (that *ProductManager) Table(ctx context.Context, sessionID string) (*ProductTable, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return that.build(session.Filter), nil
}

// SetFilter - stores both filter inputs at once, as a submitted search form does.
func (that *ProductManager) SetFilter(ctx context.Context, sessionID string, filter entity.ProductFilter) (*ProductTable, error) {
	return that.update(ctx, sessionID, func(current *entity.ProductFilter) {
		*current = filter
	})
}

func (that *ProductManager) SetFilterText(ctx context.Context, sessionID, text string) (*ProductTable, error) {
	return that.update(ctx, sessionID, func(current *entity.ProductFilter) {
		current.Text = text
	})
}

func (that *ProductManager) SetInStockOnly(ctx context.Context, sessionID string, inStockOnly bool) (*ProductTable, error) {
	return that.update(ctx, sessionID, func(current *entity.ProductFilter) {
		current.InStockOnly = inStockOnly
	})
}

// Query - filters the catalog without touching any session.
func (that *ProductManager) Query(filter entity.ProductFilter) *ProductTable {
	return that.build(filter)
}

func (that *ProductManager) update(ctx context.Context, sessionID string, change func(*entity.ProductFilter)) (*ProductTable, error) {
	log := that.logger.With("method", "update", "session", sessionID)

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	change(&session.Filter)

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	log.Debug("filter changed", "text", session.Filter.Text, "in_stock_only", session.Filter.InStockOnly)

	return that.build(session.Filter), nil
}

func (that *ProductManager) build(filter entity.ProductFilter) *ProductTable {
	that.metrics.ProductQuery()

	visible := filter.Apply(that.catalog.Products())

	return &ProductTable{
		Filter:  filter,
		Rows:    entity.BuildProductTable(visible),
		Visible: len(visible),
	}
}
