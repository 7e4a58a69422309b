// SPDX-License-Identifier: Apache-2.0

package irc

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/irc.v4"

	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/models"
)

// chanServ is the services bot that owns channel access lists.
const chanServ = "ChanServ"

const dialTimeout = 30 * time.Second

// MessageHandler receives every inbound message the transport does not
// consume itself (registration numerics and ChanServ query replies are
// handled internally). The bot layer registers one via [Client.OnMessage].
type MessageHandler func(msg *irc.Message)

// Client is the single connection to the network. It implements
// [Transport] and [Messenger]. One Client serves the whole process;
// ChanServ access-list queries are serialized because their replies
// carry no correlation token.
type Client struct {
	cfg     config.IRC
	log     *logger.Logger
	limiter *rate.Limiter

	mu          sync.RWMutex
	client      *irc.Client
	conn        net.Conn
	ready       chan struct{}
	readyClosed bool

	queryMu      sync.Mutex
	pendingMu    sync.Mutex
	pendingQuery *accessQuery

	handlerMu sync.RWMutex
	handler   MessageHandler
	onReady   func()
}

// NewClient builds a Client from the IRC section of the bot config.
// Call [Client.Run] to connect.
func NewClient(cfg config.IRC, log *logger.Logger) *Client {
	return &Client{
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(cfg.MessagesPerSecond), cfg.Burst),
		ready:   make(chan struct{}),
	}
}

// OnMessage registers the bot-layer handler. Must be called before Run.
func (c *Client) OnMessage(h MessageHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.handler = h
}

// OnReady registers a callback invoked after every completed
// registration, including re-registrations after a reconnect. The
// callback runs on the read loop and must not block; spawn a goroutine
// for anything slow. Must be called before Run.
func (c *Client) OnReady(h func()) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.onReady = h
}

// Ready is closed once the current connection's registration completes
// (RPL_WELCOME received), after which Privmsg and the Transport
// operations can be used. Each reconnect re-arms the signal, so callers
// that outlive one connection should prefer [Client.OnReady].
func (c *Client) Ready() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Run connects to the configured server and processes messages until
// ctx is canceled or the connection drops. It returns the connection
// error; callers own the reconnect policy.
func (c *Client) Run(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("irc: dial %s: %w", c.cfg.Server, err)
	}

	clientCfg := irc.ClientConfig{
		Nick:    c.cfg.Nick,
		User:    c.cfg.User,
		Name:    c.cfg.Realname,
		Handler: irc.HandlerFunc(c.handle),
	}

	client := irc.NewClient(conn, clientCfg)
	// account-tag attributes chat commands to services accounts,
	// multi-prefix keeps NAMES output unambiguous.
	client.CapRequest("account-tag", false)
	client.CapRequest("multi-prefix", false)
	if c.saslEnabled() {
		// The AUTHENTICATE exchange itself happens in handle once the
		// server ACKs the capability.
		client.CapRequest("sasl", true)
	}

	c.mu.Lock()
	c.client = client
	c.conn = conn
	c.armReady()
	c.mu.Unlock()

	err = client.RunContext(ctx)

	c.mu.Lock()
	c.client = nil
	c.conn = nil
	c.mu.Unlock()
	c.failPendingQuery()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("irc: connection to %s closed: %w", c.cfg.Server, err)
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: dialTimeout}
	if !c.cfg.UseTLS() {
		return dialer.DialContext(ctx, "tcp", c.cfg.Server)
	}
	return (&tls.Dialer{NetDialer: dialer}).DialContext(ctx, "tcp", c.cfg.Server)
}

func (c *Client) saslEnabled() bool {
	return c.cfg.Account != "" && c.cfg.Password != ""
}

// armReady re-creates the ready signal for a fresh connection. Caller
// holds c.mu.
func (c *Client) armReady() {
	if c.readyClosed {
		c.ready = make(chan struct{})
		c.readyClosed = false
	}
}

func (c *Client) markReady() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.readyClosed {
		close(c.ready)
		c.readyClosed = true
	}
}

// handle dispatches one inbound message. Registration numerics, the
// SASL exchange, and ChanServ NOTICEs belonging to an in-flight
// access-list query are consumed here; everything else is forwarded to
// the registered bot handler.
func (c *Client) handle(cl *irc.Client, m *irc.Message) {
	switch m.Command {
	case "001": // RPL_WELCOME
		c.log.Info().Str("server", m.Prefix.Name).Str("nick", c.CurrentNick()).Msg("registered with network")
		c.markReady()
		c.handlerMu.RLock()
		onReady := c.onReady
		c.handlerMu.RUnlock()
		if onReady != nil {
			onReady()
		}
	case "CAP":
		// ACK of the sasl capability opens the AUTHENTICATE exchange.
		if c.saslEnabled() && len(m.Params) >= 3 && m.Params[1] == "ACK" && capAcked(m.Params[2], "sasl") {
			c.writeRegistration(cl, "AUTHENTICATE PLAIN")
		}
	case "AUTHENTICATE":
		if c.saslEnabled() && len(m.Params) > 0 && m.Params[0] == "+" {
			c.writeRegistration(cl, "AUTHENTICATE "+saslPlain(c.cfg.Account, c.cfg.Password))
		}
	case "903": // RPL_SASLSUCCESS
		c.log.Info().Str("account", c.cfg.Account).Msg("SASL authentication succeeded")
	case "904", "905": // ERR_SASLFAIL, ERR_SASLTOOLONG
		// Without the services account the bot has no ChanServ rights,
		// so registration must not proceed. Dropping the connection
		// makes Run return and hands the decision to the reconnect
		// policy. Ready stays unarmed: RPL_WELCOME never arrives.
		c.log.Error().Str("account", c.cfg.Account).Msg("SASL authentication failed, dropping connection")
		c.abortConnection()
	case "NOTICE":
		if m.Prefix != nil && m.Prefix.Name == chanServ && c.routeChanServNotice(m.Trailing()) {
			return
		}
	}

	c.handlerMu.RLock()
	h := c.handler
	c.handlerMu.RUnlock()
	if h != nil {
		h(m)
	}
}

// writeRegistration sends one line of the registration conversation.
// These bypass the flood limiter: the server is waiting on them and
// nothing else is on the wire yet.
func (c *Client) writeRegistration(cl *irc.Client, line string) {
	if err := cl.Write(line); err != nil {
		c.log.Error().Err(err).Msg("error answering registration exchange")
	}
}

// abortConnection tears down the current connection, forcing the
// blocked RunContext to return.
func (c *Client) abortConnection() {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn != nil {
		conn.Close() //nolint:errcheck
	}
}

// capAcked reports whether name is in a CAP ACK's space-separated
// capability list.
func capAcked(caps, name string) bool {
	for _, acked := range strings.Fields(caps) {
		if acked == name {
			return true
		}
	}
	return false
}

// saslPlain renders the SASL PLAIN initial response: base64 of
// authzid NUL authcid NUL password, with the authzid left empty.
func saslPlain(account, password string) string {
	return base64.StdEncoding.EncodeToString([]byte("\x00" + account + "\x00" + password))
}

// QueryAccessList implements [Transport]. It sends `flags <channel>` to
// ChanServ and collects NOTICE replies until the end-of-listing marker.
// Bound it with a deadline; a listing cut short by ctx is reported as a
// [TransientError] and never returned partially parsed.
func (c *Client) QueryAccessList(ctx context.Context, channel string) (models.Snapshot, error) {
	// Replies carry no token tying them to a channel, so only one
	// listing may be on the wire at a time. Concurrent channel syncs
	// queue here.
	c.queryMu.Lock()
	defer c.queryMu.Unlock()

	q := &accessQuery{
		parser: newAccessListParser(channel),
		done:   make(chan struct{}),
	}

	c.pendingMu.Lock()
	if c.pendingQuery != nil {
		c.pendingMu.Unlock()
		return models.Snapshot{}, ErrQueryInProgress
	}
	c.pendingQuery = q
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		c.pendingQuery = nil
		c.pendingMu.Unlock()
	}()

	if err := c.Privmsg(ctx, chanServ, "flags "+channel); err != nil {
		return models.Snapshot{}, fmt.Errorf("access list query for %s: %w", channel, err)
	}

	select {
	case <-ctx.Done():
		return models.Snapshot{}, transient(fmt.Errorf("access list query for %s: %w", channel, ctx.Err()))
	case <-q.done:
	}

	if q.dropped {
		return models.Snapshot{}, transient(fmt.Errorf("access list query for %s: %w", channel, ErrNotConnected))
	}
	return q.parser.Snapshot()
}

// ApplyFlagChange implements [Transport]. An empty mutation is a no-op.
func (c *Client) ApplyFlagChange(ctx context.Context, channel string, identity models.Identity, add, remove models.FlagSet) error {
	mode := models.MutationCommand{Channel: channel, Identity: identity, Add: add, Remove: remove}.Mode()
	if mode == "" {
		return nil
	}
	return c.Privmsg(ctx, chanServ, fmt.Sprintf("flags %s %s %s", channel, identity.String(), mode))
}

// Privmsg implements [Messenger]. Sends are paced by the outgoing flood
// limiter, so this blocks when the bot is talking faster than the
// configured rate.
func (c *Client) Privmsg(ctx context.Context, target, text string) error {
	return c.send(ctx, "PRIVMSG %s :%s", target, text)
}

// Join asks the server to join a channel.
func (c *Client) Join(ctx context.Context, channel string) error {
	return c.send(ctx, "JOIN %s", channel)
}

// CurrentNick returns the nick in use, falling back to the configured
// one while disconnected.
func (c *Client) CurrentNick() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.client == nil {
		return c.cfg.Nick
	}
	return c.client.CurrentNick()
}

func (c *Client) send(ctx context.Context, format string, args ...any) error {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return transient(ErrNotConnected)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := client.Writef(format, args...); err != nil {
		return transient(err)
	}
	return nil
}

func (c *Client) routeChanServNotice(line string) bool {
	c.pendingMu.Lock()
	q := c.pendingQuery
	c.pendingMu.Unlock()
	if q == nil {
		return false
	}
	if q.parser.Feed(line) {
		q.finish()
	}
	return true
}

// failPendingQuery unblocks a query waiting on a connection that just
// went away.
func (c *Client) failPendingQuery() {
	c.pendingMu.Lock()
	q := c.pendingQuery
	c.pendingMu.Unlock()
	if q != nil {
		q.dropped = true
		q.finish()
	}
}

// accessQuery is one in-flight ChanServ flags listing.
type accessQuery struct {
	parser  *accessListParser
	done    chan struct{}
	once    sync.Once
	dropped bool
}

func (q *accessQuery) finish() {
	q.once.Do(func() { close(q.done) })
}
