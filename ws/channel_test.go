package ws

import (
	"context"
	"testing"
	"time"

	"negromart_seller/internal/api"
	"negromart_seller/internal/services"
	"negromart_seller/internal/session"
	"negromart_seller/internal/testserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventually = 2 * time.Second

// manualClock hands the reconnect waits to the test: every requested delay is
// reported on waits, and a wait ends only when the test sends on fire.
type manualClock struct {
	waits chan time.Duration
	fire  chan time.Time
}

func newManualClock() *manualClock {
	return &manualClock{waits: make(chan time.Duration, 16), fire: make(chan time.Time)}
}

func (m *manualClock) after(d time.Duration) <-chan time.Time {
	m.waits <- d
	return m.fire
}

func (m *manualClock) nextWait(t *testing.T) time.Duration {
	t.Helper()
	select {
	case d := <-m.waits:
		return d
	case <-time.After(eventually):
		t.Fatal("channel never scheduled a reconnect")
		return 0
	}
}

func ticketSource(t *testing.T, srv *testserver.Server) TicketSource {
	t.Helper()
	sess := session.New(nil)
	access, refresh := srv.IssueTokens()
	require.NoError(t, sess.SetTokens(context.Background(), access, refresh))
	return services.NewNotificationService(api.New(srv.APIBase(), sess))
}

func collect(ch *Channel) <-chan Frame {
	frames := make(chan Frame, 32)
	ch.Subscribe(func(f Frame) { frames <- f })
	return frames
}

func nextFrame(t *testing.T, frames <-chan Frame) Frame {
	t.Helper()
	select {
	case f := <-frames:
		return f
	case <-time.After(eventually):
		t.Fatal("no frame received")
		return Frame{}
	}
}

func TestChannel_ReceivesSnapshotOnConnect(t *testing.T) {
	srv := testserver.New(t)
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: PathNotifications}, ticketSource(t, srv))
	frames := collect(ch)

	require.NoError(t, ch.Start(context.Background()))
	defer ch.Close()

	f := nextFrame(t, frames)
	assert.Equal(t, FrameInitData, f.Type)
	assert.Len(t, f.Notifications, 3)
	require.NotNil(t, f.UnreadCount)
	assert.Equal(t, 2, *f.UnreadCount)
	assert.Equal(t, StateOpen, ch.State())
}

func TestChannel_SendsOnOpenActionAfterConnect(t *testing.T) {
	srv := testserver.New(t)
	onOpen := ViewDetail(1)
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: DetailPath(1), OnOpen: &onOpen}, ticketSource(t, srv))

	require.NoError(t, ch.Start(context.Background()))
	defer ch.Close()

	assert.Eventually(t, func() bool {
		for _, a := range srv.Actions() {
			if a.Path == "/ws/notifications/1/" && a.Action == "view_detail" && a.ID == 1 {
				return true
			}
		}
		return false
	}, eventually, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		n, _ := srv.Notification(1)
		return n.IsRead
	}, eventually, 10*time.Millisecond)
}

func TestChannel_AwaitOpenReturnsOnceOnOpenIsWritten(t *testing.T) {
	srv := testserver.New(t)
	onOpen := ViewDetail(2)
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: DetailPath(2), OnOpen: &onOpen}, ticketSource(t, srv))

	require.NoError(t, ch.Start(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), eventually)
	defer cancel()
	require.NoError(t, ch.AwaitOpen(ctx))
	require.NoError(t, ch.Close())

	assert.Eventually(t, func() bool {
		n, _ := srv.Notification(2)
		return n.IsRead
	}, eventually, 10*time.Millisecond)
	assert.ErrorIs(t, ch.AwaitOpen(context.Background()), ErrNotConnected)
}

func TestChannel_AwaitOpenReturnsWhenClosedBeforeOpening(t *testing.T) {
	srv := testserver.New(t)
	srv.FailTickets(1)
	clock := newManualClock()
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: PathNotifications}, ticketSource(t, srv), WithAfter(clock.after))

	require.NoError(t, ch.Start(context.Background()))
	clock.nextWait(t)

	result := make(chan error, 1)
	go func() { result <- ch.AwaitOpen(context.Background()) }()

	require.NoError(t, ch.Close())

	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrNotConnected)
	case <-time.After(eventually):
		t.Fatal("AwaitOpen still blocked after Close")
	}
}

func TestChannel_CloseFromSubscriber(t *testing.T) {
	srv := testserver.New(t)
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: PathNotifications}, ticketSource(t, srv))

	closed := make(chan error, 1)
	ch.Subscribe(func(f Frame) {
		if f.Type == FrameInitData {
			closed <- ch.Close()
		}
	})

	require.NoError(t, ch.Start(context.Background()))

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(eventually):
		t.Fatal("Close called from a subscriber never returned")
	}

	assert.Equal(t, StateClosed, ch.State())
	require.NoError(t, ch.Close())
	assert.Never(t, func() bool { return srv.TicketsIssued() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, 1, srv.Connects(PathNotifications))
}

func TestChannel_ReconnectsAfterFixedDelayWithFreshTicket(t *testing.T) {
	srv := testserver.New(t)
	clock := newManualClock()
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: PathCounter}, ticketSource(t, srv), WithAfter(clock.after))
	frames := collect(ch)

	require.NoError(t, ch.Start(context.Background()))
	defer ch.Close()

	assert.Equal(t, FrameUnreadCount, nextFrame(t, frames).Type)
	require.Equal(t, 1, srv.TicketsIssued())

	srv.DropConnections()

	assert.Equal(t, 3000*time.Millisecond, clock.nextWait(t))
	assert.Equal(t, StateWaiting, ch.State())
	assert.Never(t, func() bool { return srv.TicketsIssued() > 1 }, 100*time.Millisecond, 10*time.Millisecond,
		"no ticket before the delay elapses")

	clock.fire <- time.Now()

	assert.Equal(t, FrameUnreadCount, nextFrame(t, frames).Type)
	assert.Equal(t, 2, srv.TicketsIssued())
	assert.Equal(t, 2, srv.Connects(PathCounter))
}

func TestChannel_TicketFailureRetriesAfterLongerDelay(t *testing.T) {
	srv := testserver.New(t)
	srv.FailTickets(1)
	clock := newManualClock()
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: PathNotifications}, ticketSource(t, srv), WithAfter(clock.after))
	frames := collect(ch)

	require.NoError(t, ch.Start(context.Background()))
	defer ch.Close()

	assert.Equal(t, 5000*time.Millisecond, clock.nextWait(t))
	assert.Equal(t, 0, srv.Connects(PathNotifications))

	clock.fire <- time.Now()

	assert.Equal(t, FrameInitData, nextFrame(t, frames).Type)
	assert.Equal(t, 1, srv.TicketsIssued())
}

func TestChannel_CloseCancelsPendingReconnect(t *testing.T) {
	srv := testserver.New(t)
	clock := newManualClock()
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: PathNotifications}, ticketSource(t, srv), WithAfter(clock.after))
	frames := collect(ch)

	require.NoError(t, ch.Start(context.Background()))
	nextFrame(t, frames)

	srv.DropConnections()
	clock.nextWait(t)

	require.NoError(t, ch.Close())
	assert.Equal(t, StateClosed, ch.State())

	select {
	case clock.fire <- time.Now():
		t.Fatal("closed channel still waiting to reconnect")
	default:
	}
	assert.Equal(t, 1, srv.TicketsIssued())
	assert.ErrorIs(t, ch.Start(context.Background()), ErrAlreadyRunning)
}

func TestChannel_SendWhileDisconnected(t *testing.T) {
	srv := testserver.New(t)
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase()}, ticketSource(t, srv))

	assert.ErrorIs(t, ch.Send(MarkAllRead()), ErrNotConnected)
	assert.Equal(t, StateIdle, ch.State())
}

func TestChannel_ActionsRoundTrip(t *testing.T) {
	srv := testserver.New(t)
	ch := NewChannel(ChannelConfig{BaseURL: srv.WSBase(), Path: PathNotifications}, ticketSource(t, srv))
	frames := collect(ch)

	require.NoError(t, ch.Start(context.Background()))
	defer ch.Close()
	nextFrame(t, frames)

	require.NoError(t, ch.Send(MarkAllRead()))

	f := nextFrame(t, frames)
	assert.Equal(t, FrameRefreshList, f.Type)
	require.NotNil(t, f.UnreadCount)
	assert.Equal(t, 0, *f.UnreadCount)
	for _, n := range f.Notifications {
		assert.True(t, n.IsRead)
	}
}
