// Package orders holds the order form: its maths, validation, notifications
// and the execution port orders are handed to.
package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
	"github.com/ducminhle1904/nextrade-dashboard/internal/logger"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

const component = "orders"

// OrderRequest is a validated order as the form submits it. Price is the
// ticker price for market orders.
type OrderRequest struct {
	Symbol string
	Side   types.Side
	Type   types.OrderType
	Amount float64
	Price  float64
}

type Receipt struct {
	OrderID  string
	Accepted bool
	At       time.Time
}

// OrderExecutionPort is where orders leave the dashboard. A matching-engine
// backed implementation can replace MockExecutor without touching the form.
type OrderExecutionPort interface {
	Submit(ctx context.Context, req OrderRequest) (Receipt, error)
	Cancel(ctx context.Context, orderID string) error
}

// MockExecutor acknowledges every order and changes nothing. Market data is
// never affected by what it receives.
type MockExecutor struct {
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

func NewMockExecutor(log *logger.Logger) *MockExecutor {
	if log == nil {
		log = logger.Discard()
	}
	return &MockExecutor{
		log:   log,
		now:   time.Now,
		newID: func() string { return "ord-" + uuid.NewString()[:8] },
	}
}

func (m *MockExecutor) Submit(ctx context.Context, req OrderRequest) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, dasherrors.WrapError(err, dasherrors.ErrorCategoryOrder, component, "submit")
	}

	receipt := Receipt{OrderID: m.newID(), Accepted: true, At: m.now()}
	m.log.Info("mock %s %s %s %g @ %g accepted as %s",
		req.Type, req.Side, req.Symbol, req.Amount, req.Price, receipt.OrderID)
	return receipt, nil
}

func (m *MockExecutor) Cancel(ctx context.Context, orderID string) error {
	if err := ctx.Err(); err != nil {
		return dasherrors.WrapError(err, dasherrors.ErrorCategoryOrder, component, "cancel")
	}
	if strings.TrimSpace(orderID) == "" {
		return dasherrors.NewDashboardError(dasherrors.ErrorCategoryOrder, component, "cancel", "order id is required")
	}

	m.log.Info("mock cancel of %s acknowledged", orderID)
	return nil
}
