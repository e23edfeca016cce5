package handoff

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeLauncher struct {
	rec *recorder
	err error
}

func (l *fakeLauncher) Open(ctx context.Context, url string) error {
	l.rec.add("open " + url)
	return l.err
}

type fakeNotifier struct {
	rec *recorder
}

func (n *fakeNotifier) Notify(ctx context.Context, message string) {
	n.rec.add("notify " + message)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notice was not delivered")
	}
}

func TestDispatch_OpensThenNotifies(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(&fakeLauncher{rec: rec}, &fakeNotifier{rec: rec}, nil)

	h := New("hi")
	h.NoticeDelay = 5 * time.Millisecond
	waitDone(t, d.Dispatch(context.Background(), h))

	assert.Equal(t, []string{"open " + h.URL, "notify " + Notice}, rec.list())
}

func TestDispatch_NotifiesWhenLaunchFails(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(&fakeLauncher{rec: rec, err: errors.New("no browser")}, &fakeNotifier{rec: rec}, nil)

	h := New("hi")
	h.NoticeDelay = time.Millisecond
	waitDone(t, d.Dispatch(context.Background(), h))

	require.Len(t, rec.list(), 2)
	assert.Equal(t, "notify "+Notice, rec.list()[1])
}

func TestDispatch_UsesConfiguredDelay(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(&fakeLauncher{rec: rec}, &fakeNotifier{rec: rec}, nil)

	var got time.Duration
	d.afterFunc = func(delay time.Duration, f func()) *time.Timer {
		got = delay
		f()
		return nil
	}

	waitDone(t, d.Dispatch(context.Background(), New("hi")))
	assert.Equal(t, 500*time.Millisecond, got)
}

func TestDispatch_NoticeSurvivesCancelledContext(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(&fakeLauncher{rec: rec}, &fakeNotifier{rec: rec}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	h := New("hi")
	h.NoticeDelay = 10 * time.Millisecond
	done := d.Dispatch(ctx, h)
	cancel()

	waitDone(t, done)
	assert.Len(t, rec.list(), 2)
}
