package client

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn answers account_info with a fixed balance once release is closed.
type fakeConn struct {
	url     string
	started chan struct{}
	release chan struct{}

	once   sync.Once
	done   chan struct{}
	closed bool
	mu     sync.Mutex
}

func newFakeConn(url string, blocking bool) *fakeConn {
	c := &fakeConn{url: url, started: make(chan struct{}, 1), release: make(chan struct{}), done: make(chan struct{})}
	if !blocking {
		close(c.release)
	}
	return c
}

func (c *fakeConn) Call(ctx context.Context, command string, params map[string]any, out any) error {
	select {
	case c.started <- struct{}{}:
	default:
	}
	<-c.release
	return json.Unmarshal([]byte(`{"account_data":{"Balance":"42","Sequence":1}}`), out)
}

func (c *fakeConn) Done() <-chan struct{} { return c.done }

func (c *fakeConn) Close() error {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	})
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeDialer hands out connections built by next and records the dialed urls.
type fakeDialer struct {
	mu    sync.Mutex
	urls  []string
	conns []*fakeConn
	gate  chan struct{} // when set, Dial waits for it
	next  func(url string) *fakeConn
}

func (d *fakeDialer) Dial(ctx context.Context, url string) (Conn, error) {
	if d.gate != nil {
		<-d.gate
	}
	c := d.next(url)
	d.mu.Lock()
	d.urls = append(d.urls, url)
	d.conns = append(d.conns, c)
	d.mu.Unlock()
	return c, nil
}

func (d *fakeDialer) dialed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.urls...)
}

func TestSwitchDiscardsInFlightResult(t *testing.T) {
	blocking := true
	d := &fakeDialer{next: func(url string) *fakeConn {
		c := newFakeConn(url, blocking)
		blocking = false
		return c
	}}
	l := NewLedger(model.Testnet, Options{Dialer: d})

	type result struct {
		drops uint64
		err   error
	}
	results := make(chan result, 1)
	go func() {
		drops, err := l.GetBalance(context.Background(), alice)
		results <- result{drops, err}
	}()

	// wait until the testnet request is in flight
	require.Eventually(t, func() bool { return len(d.dialed()) == 1 }, time.Second, time.Millisecond)
	first := d.conns[0]
	<-first.started

	switched := make(chan struct{})
	go func() {
		l.SwitchNetwork(model.Mainnet)
		close(switched)
	}()
	select {
	case <-switched:
	case <-time.After(time.Second):
		t.Fatal("SwitchNetwork blocked on an in-flight request")
	}
	assert.True(t, first.isClosed())

	// the old endpoint answers after the switch
	close(first.release)
	res := <-results
	assert.Zero(t, res.drops)
	assert.ErrorIs(t, res.err, errs.ErrNetwork)
	assert.ErrorIs(t, res.err, ErrStale)

	drops, err := l.GetBalance(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), drops)
	assert.Equal(t, []string{model.Testnet.EndpointURL, model.Mainnet.EndpointURL}, d.dialed())
	assert.Equal(t, model.NetworkMainnet, l.Network().Key)
}

func TestSwitchDuringDial(t *testing.T) {
	d := &fakeDialer{
		gate: make(chan struct{}),
		next: func(url string) *fakeConn { return newFakeConn(url, false) },
	}
	l := NewLedger(model.Testnet, Options{Dialer: d})

	errc := make(chan error, 1)
	go func() { errc <- l.EnsureConnected(context.Background()) }()

	// give the dial a moment to start; switching must not wait for it
	time.Sleep(10 * time.Millisecond)
	switched := make(chan struct{})
	go func() {
		l.SwitchNetwork(model.Mainnet)
		close(switched)
	}()
	select {
	case <-switched:
	case <-time.After(time.Second):
		t.Fatal("SwitchNetwork blocked on a dial")
	}

	close(d.gate)
	err := <-errc
	assert.ErrorIs(t, err, ErrStale)
	require.Len(t, d.conns, 1)
	assert.True(t, d.conns[0].isClosed(), "connection dialed for the old network must be closed")

	require.NoError(t, l.EnsureConnected(context.Background()))
	assert.Equal(t, model.Mainnet.EndpointURL, d.dialed()[1])
}

func TestDroppedConnectionIsRedialed(t *testing.T) {
	d := &fakeDialer{next: func(url string) *fakeConn { return newFakeConn(url, false) }}
	l := NewLedger(model.Testnet, Options{Dialer: d})

	require.NoError(t, l.EnsureConnected(context.Background()))
	d.conns[0].Close() // server went away

	_, err := l.GetBalance(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, d.dialed(), 2)
}
