package orders

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ducminhle1904/nextrade-dashboard/internal/format"
	"github.com/ducminhle1904/nextrade-dashboard/internal/logger"
	"github.com/ducminhle1904/nextrade-dashboard/internal/monitoring"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a transient toast shown after a form action.
type Notification struct {
	Level       NotificationLevel
	Title       string
	Description string
	At          time.Time
}

func (n Notification) IsError() bool {
	return n.Level == NotificationError
}

const (
	msgInvalidAmount = "Please enter a valid amount"
	msgInvalidPrice  = "Please enter a valid price"
)

// Service validates form submissions and hands them to the execution port.
// Invalid input never reaches the port; it comes back as an error toast.
type Service struct {
	port OrderExecutionPort
	log  *logger.Logger
	now  func() time.Time
}

func NewService(port OrderExecutionPort, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{port: port, log: log, now: time.Now}
}

// Validate returns an error toast for an unusable form, or nil.
func (s *Service) Validate(form Form) *Notification {
	if !(form.Amount > 0) || math.IsInf(form.Amount, 0) {
		n := s.notify(NotificationError, msgInvalidAmount, "")
		return &n
	}
	if form.Type != types.OrderTypeMarket && (!(form.Price > 0) || math.IsInf(form.Price, 0)) {
		n := s.notify(NotificationError, msgInvalidPrice, "")
		return &n
	}
	return nil
}

// Place submits form for ticker. The returned error is set only when the
// port fails; rejected input yields an error notification and a nil error.
func (s *Service) Place(ctx context.Context, ticker types.Ticker, form Form) (Notification, error) {
	if n := s.Validate(form); n != nil {
		monitoring.RecordOrder(ticker.Symbol, string(form.Side), "rejected")
		s.log.Warning("order rejected for %s: %s", ticker.Symbol, n.Title)
		return *n, nil
	}

	price := form.EffectivePrice(ticker)
	req := OrderRequest{
		Symbol: ticker.Symbol,
		Side:   form.Side,
		Type:   form.Type,
		Amount: form.Amount,
		Price:  price,
	}

	receipt, err := s.port.Submit(ctx, req)
	if err != nil {
		monitoring.RecordOrder(ticker.Symbol, string(form.Side), "failed")
		s.log.LogError("submit order", err)
		return s.notify(NotificationError, "Order Failed", err.Error()), err
	}

	monitoring.RecordOrder(ticker.Symbol, string(form.Side), "placed")
	s.log.Info("order %s placed: %s %s %s", receipt.OrderID, form.Type, form.Side, ticker.Symbol)

	title := fmt.Sprintf("%s %s Order Placed", form.Type.Title(), form.Side.Title())
	desc := fmt.Sprintf("%s %s at $%s", decimal.NewFromFloat(form.Amount).String(), ticker.Symbol, format.Fixed(price, 2))
	return s.notify(NotificationSuccess, title, desc), nil
}

// Cancel asks the port to cancel order. The order list itself is not
// changed.
func (s *Service) Cancel(ctx context.Context, order types.Order) (Notification, error) {
	if err := s.port.Cancel(ctx, order.ID); err != nil {
		monitoring.RecordOrder(order.Symbol, string(order.Side), "failed")
		s.log.LogError("cancel order", err)
		return s.notify(NotificationError, "Cancel Failed", err.Error()), err
	}

	monitoring.RecordOrder(order.Symbol, string(order.Side), "cancelled")
	return s.notify(NotificationSuccess, "Order Cancelled", fmt.Sprintf("Order %s has been cancelled", order.ID)), nil
}

func (s *Service) notify(level NotificationLevel, title, desc string) Notification {
	return Notification{Level: level, Title: title, Description: desc, At: s.now()}
}

// FixtureOpenOrders returns the demo open-order list relative to now.
func FixtureOpenOrders(now time.Time) []types.Order {
	btcPrice := 96500.0
	ethPrice := 4000.0

	return []types.Order{
		{
			ID:        "ord-1",
			Symbol:    "BTC",
			Side:      types.SideBuy,
			Type:      types.OrderTypeLimit,
			Price:     &btcPrice,
			Amount:    0.5,
			Filled:    0,
			Status:    types.OrderStatusOpen,
			Timestamp: now.Add(-time.Hour),
		},
		{
			ID:        "ord-2",
			Symbol:    "ETH",
			Side:      types.SideSell,
			Type:      types.OrderTypeLimit,
			Price:     &ethPrice,
			Amount:    2.0,
			Filled:    0.8,
			Status:    types.OrderStatusPartial,
			Timestamp: now.Add(-2 * time.Hour),
		},
	}
}

// FindOrder looks up id in list.
func FindOrder(list []types.Order, id string) (types.Order, bool) {
	for _, o := range list {
		if o.ID == id {
			return o, true
		}
	}
	return types.Order{}, false
}
