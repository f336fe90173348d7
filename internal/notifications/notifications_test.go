package notifications

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/nextrade-dashboard/internal/orders"
)

type recordingNotifier struct {
	levels   []string
	messages []string
	err      error
}

func (r *recordingNotifier) SendAlert(level, message string) error {
	r.levels = append(r.levels, level)
	r.messages = append(r.messages, message)
	return r.err
}

func toast(title string, at time.Time) orders.Notification {
	return orders.Notification{Level: orders.NotificationSuccess, Title: title, At: at}
}

func TestCenter_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCenter(CenterParams{TTL: 4 * time.Second})
	c.now = func() time.Time { return now }

	c.Push(toast("first", now.Add(-5*time.Second)))
	c.Push(toast("second", now.Add(-time.Second)))
	c.Push(orders.Notification{Title: "stamped now"})

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "second", active[0].Title)
	assert.Equal(t, now, active[1].At)

	now = now.Add(10 * time.Second)
	assert.Empty(t, c.Active())
}

func TestCenter_Limit(t *testing.T) {
	now := time.Now()
	c := NewCenter(CenterParams{Limit: 2})

	for _, title := range []string{"a", "b", "c"} {
		c.Push(toast(title, now))
	}

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "b", active[0].Title)
	assert.Equal(t, "c", active[1].Title)
}

func TestCenter_Forward(t *testing.T) {
	fwd := &recordingNotifier{}
	c := NewCenter(CenterParams{Forward: fwd})

	c.Push(orders.Notification{Level: orders.NotificationSuccess, Title: "Order Cancelled", Description: "Order ord-1 has been cancelled"})
	c.Push(orders.Notification{Level: orders.NotificationError, Title: "Please enter a valid amount"})

	assert.Equal(t, []string{"success", "error"}, fwd.levels)
	assert.Equal(t, "Order Cancelled\nOrder ord-1 has been cancelled", fwd.messages[0])
	assert.Equal(t, "Please enter a valid amount", fwd.messages[1])

	fwd.err = errors.New("offline")
	c.Push(toast("still shown", time.Now()))
	assert.Len(t, c.Active(), 3)
}

func TestTelegramNotifier(t *testing.T) {
	type request struct {
		path string
		form url.Values
	}
	requests := make(chan request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		requests <- request{path: r.URL.Path, form: form}
	}))
	defer srv.Close()

	n := NewTelegramNotifier("tok", "42")
	n.baseURL = srv.URL

	require.NoError(t, n.SendAlert("success", "Limit Buy Order Placed"))
	req := <-requests
	got := req.form
	assert.Equal(t, "/bottok/sendMessage", req.path)
	assert.Equal(t, "42", got.Get("chat_id"))
	assert.Equal(t, "✅ *NexTrade*\n\nLimit Buy Order Placed", got.Get("text"))
	assert.Equal(t, "Markdown", got.Get("parse_mode"))
}

func TestTelegramNotifier_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("bad", "42")
	n.baseURL = srv.URL

	assert.EqualError(t, n.SendAlert("error", "x"), "telegram API returned status 401")
}

func TestTelegramNotifier_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("tok", "42")
	n.baseURL = srv.URL

	for i := 0; i < 3; i++ {
		require.NoError(t, n.SendAlert("success", "burst"))
	}
	assert.ErrorIs(t, n.SendAlert("success", "one too many"), ErrRateLimited)
	assert.Equal(t, int32(3), calls.Load())
}
