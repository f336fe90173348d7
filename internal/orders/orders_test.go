package orders

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dasherrors "github.com/ducminhle1904/nextrade-dashboard/internal/errors"
	"github.com/ducminhle1904/nextrade-dashboard/pkg/types"
)

var solTicker = types.Ticker{Symbol: "SOL", Name: "Solana", Price: 234.82}

type recordingPort struct {
	submitted []OrderRequest
	cancelled []string
	err       error
}

func (p *recordingPort) Submit(_ context.Context, req OrderRequest) (Receipt, error) {
	if p.err != nil {
		return Receipt{}, p.err
	}
	p.submitted = append(p.submitted, req)
	return Receipt{OrderID: "ord-test", Accepted: true}, nil
}

func (p *recordingPort) Cancel(_ context.Context, id string) error {
	if p.err != nil {
		return p.err
	}
	p.cancelled = append(p.cancelled, id)
	return nil
}

func TestMaxAmount(t *testing.T) {
	balance := Balance{USD: 50000, Crypto: 2.5}

	assert.InDelta(t, 50000/234.82, MaxAmount(types.SideBuy, balance, 234.82), 1e-12)
	assert.Equal(t, 2.5, MaxAmount(types.SideSell, balance, 234.82))
	assert.Equal(t, 0.0, MaxAmount(types.SideBuy, balance, 0))
}

func TestSlider(t *testing.T) {
	max := MaxAmount(types.SideBuy, Balance{USD: 50000}, 234.82)

	assert.Equal(t, 106.464526, AmountFromSlider(max, 50))
	assert.Equal(t, 0.0, AmountFromSlider(max, 0))
	assert.Equal(t, 2.5, AmountFromSlider(2.5, 100))
	assert.Equal(t, 2.5, AmountFromSlider(2.5, 150))
	assert.Equal(t, 0.625, AmountFromSlider(2.5, 25))

	assert.Equal(t, 25.0, SliderFromAmount(0.625, 2.5))
	assert.Equal(t, 100.0, SliderFromAmount(10, 2.5))
	assert.Equal(t, 0.0, SliderFromAmount(1, 0))
	assert.Equal(t, 0.0, SliderFromAmount(-1, 2.5))
}

func TestTotalAndFee(t *testing.T) {
	form := Form{Side: types.SideBuy, Type: types.OrderTypeLimit, Amount: 2, Price: 230}
	assert.Equal(t, 460.0, form.Total(solTicker))
	assert.InDelta(t, 0.46, form.Fee(solTicker), 1e-12)

	market := Form{Side: types.SideBuy, Type: types.OrderTypeMarket, Amount: 2, Price: 1}
	assert.Equal(t, 234.82, market.EffectivePrice(solTicker))

	assert.InDelta(t, 469.64, market.Total(solTicker), 1e-9)
}

func TestPlace_Success(t *testing.T) {
	port := &recordingPort{}
	svc := NewService(port, nil)

	n, err := svc.Place(context.Background(), solTicker, Form{
		Side: types.SideBuy, Type: types.OrderTypeLimit, Amount: 1.5, Price: 230.5,
	})
	require.NoError(t, err)
	assert.Equal(t, NotificationSuccess, n.Level)
	assert.Equal(t, "Limit Buy Order Placed", n.Title)
	assert.Equal(t, "1.5 SOL at $230.50", n.Description)

	require.Len(t, port.submitted, 1)
	assert.Equal(t, OrderRequest{Symbol: "SOL", Side: types.SideBuy, Type: types.OrderTypeLimit, Amount: 1.5, Price: 230.5}, port.submitted[0])
}

func TestPlace_MarketUsesTickerPrice(t *testing.T) {
	port := &recordingPort{}
	svc := NewService(port, nil)

	n, err := svc.Place(context.Background(), types.Ticker{Symbol: "BTC", Price: 97432.18}, Form{
		Side: types.SideSell, Type: types.OrderTypeMarket, Amount: 0.25,
	})
	require.NoError(t, err)
	assert.Equal(t, "Market Sell Order Placed", n.Title)
	assert.Equal(t, "0.25 BTC at $97,432.18", n.Description)
	assert.Equal(t, 97432.18, port.submitted[0].Price)
}

func TestPlace_InvalidInputNeverReachesPort(t *testing.T) {
	tests := []struct {
		name  string
		form  Form
		title string
	}{
		{"empty amount", Form{Side: types.SideBuy, Type: types.OrderTypeLimit, Price: 1}, "Please enter a valid amount"},
		{"negative amount", Form{Side: types.SideBuy, Type: types.OrderTypeMarket, Amount: -1}, "Please enter a valid amount"},
		{"limit without price", Form{Side: types.SideSell, Type: types.OrderTypeLimit, Amount: 1}, "Please enter a valid price"},
		{"infinite amount", Form{Side: types.SideBuy, Type: types.OrderTypeMarket, Amount: math.Inf(1)}, "Please enter a valid amount"},
		{"limit with infinite price", Form{Side: types.SideBuy, Type: types.OrderTypeLimit, Amount: 1, Price: math.Inf(1)}, "Please enter a valid price"},
		{"stop with negative price", Form{Side: types.SideSell, Type: types.OrderTypeStop, Amount: 1, Price: -3}, "Please enter a valid price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &recordingPort{}
			svc := NewService(port, nil)

			n, err := svc.Place(context.Background(), solTicker, tt.form)
			require.NoError(t, err)
			assert.True(t, n.IsError())
			assert.Equal(t, tt.title, n.Title)
			assert.Empty(t, port.submitted)
		})
	}
}

func TestPlace_PortFailure(t *testing.T) {
	port := &recordingPort{err: errors.New("engine offline")}
	svc := NewService(port, nil)

	n, err := svc.Place(context.Background(), solTicker, Form{Side: types.SideBuy, Type: types.OrderTypeMarket, Amount: 1})
	require.Error(t, err)
	assert.True(t, n.IsError())
	assert.Equal(t, "engine offline", n.Description)
}

func TestCancel(t *testing.T) {
	port := &recordingPort{}
	svc := NewService(port, nil)
	open := FixtureOpenOrders(time.Now())

	order, ok := FindOrder(open, "ord-2")
	require.True(t, ok)

	n, err := svc.Cancel(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "Order Cancelled", n.Title)
	assert.Equal(t, "Order ord-2 has been cancelled", n.Description)
	assert.Equal(t, []string{"ord-2"}, port.cancelled)

	assert.Equal(t, types.OrderStatusPartial, open[1].Status)

	_, ok = FindOrder(open, "ord-9")
	assert.False(t, ok)
}

func TestFixtureOpenOrders(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	open := FixtureOpenOrders(now)

	require.Len(t, open, 2)
	assert.Equal(t, 96500.0, open[0].LimitPrice())
	assert.Equal(t, 0.0, open[0].FillPercent())
	assert.Equal(t, now.Add(-time.Hour), open[0].Timestamp)
	assert.InDelta(t, 40.0, open[1].FillPercent(), 1e-12)
	assert.Equal(t, 4000.0, open[1].LimitPrice())
}

func TestMockExecutor(t *testing.T) {
	m := NewMockExecutor(nil)

	r1, err := m.Submit(context.Background(), OrderRequest{Symbol: "BTC", Amount: 1, Price: 1})
	require.NoError(t, err)
	r2, err := m.Submit(context.Background(), OrderRequest{Symbol: "BTC", Amount: 1, Price: 1})
	require.NoError(t, err)

	assert.True(t, r1.Accepted)
	assert.Len(t, r1.OrderID, len("ord-")+8)
	assert.NotEqual(t, r1.OrderID, r2.OrderID)

	require.NoError(t, m.Cancel(context.Background(), "ord-1"))

	err = m.Cancel(context.Background(), " ")
	require.Error(t, err)
	assert.True(t, dasherrors.IsCategory(err, dasherrors.ErrorCategoryOrder))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Submit(ctx, OrderRequest{})
	require.Error(t, err)
	assert.True(t, dasherrors.IsCategory(err, dasherrors.ErrorCategoryOrder))
}
