package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	The proxy core: accepts client connections, dials the
 *		real device, and splices the two sides together while
 *		injecting broadcast commands and looping their framed
 *		bytes back to the client so the authentic controller's
 *		UI stays in sync.
 *
 * Description:	Each accepted connection runs two goroutines sharing a
 *		loopback queue. The client->upstream goroutine owns the
 *		session id as a local value: it is the only writer, learned
 *		from observed upstream-bound traffic via ExtractSessionID.
 *		The upstream->client goroutine only reads it implicitly, by
 *		relaying whatever the client->upstream goroutine already
 *		wrote into the loopback queue - it never touches the session
 *		id itself. Either side's EOF or error cancels the connection's
 *		context, unwinding both goroutines.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

const (
	connBufferSize      = 4096
	loopbackQueueDepth  = 16
	broadcastQueueDepth = 16
	multiPayloadDelay   = 50 * time.Millisecond
)

// Broadcaster fans a stream of commands out to every current subscriber.
// Each subscriber has its own bounded, lossy queue: a slow subscriber drops
// its oldest pending command rather than blocking the publisher.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan RodeCommand
}

// NewBroadcaster returns an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan RodeCommand)}
}

// Subscribe registers a new subscriber and returns its channel and an id
// to later Unsubscribe with.
func (b *Broadcaster) Subscribe() (int, <-chan RodeCommand) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan RodeCommand, broadcastQueueDepth)
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber registered with Subscribe.
func (b *Broadcaster) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish sends cmd to every current subscriber, dropping the oldest
// queued command for any subscriber whose queue is full.
func (b *Broadcaster) Publish(cmd RodeCommand) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- cmd:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- cmd:
			default:
			}
		}
	}
}

// Proxy is the TCP interception proxy core.
type Proxy struct {
	Cfg       Config
	Broadcast *Broadcaster
	Logger    *log.Logger
}

// NewProxy returns a Proxy configured by cfg, injecting commands published
// on broadcast and logging through logger.
func NewProxy(cfg Config, broadcast *Broadcaster, logger *log.Logger) *Proxy {
	return &Proxy{Cfg: cfg, Broadcast: broadcast, Logger: logger}
}

// Serve accepts client connections on cfg.BindIP:BindPort until ctx is
// cancelled, splicing each one to the configured target.
func (p *Proxy) Serve(ctx context.Context) error {
	bindAddr := net.JoinHostPort(p.Cfg.BindIP, fmt.Sprintf("%d", p.Cfg.BindPort))
	listener, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return fmt.Errorf("binding proxy listener %s: %w", bindAddr, err)
	}
	defer listener.Close()

	p.Logger.Info("proxy listening", "addr", bindAddr)
	p.Logger.Info("proxy target", "target_ip", p.Cfg.TargetIP, "target_port", p.Cfg.TargetPort, "source_ip", p.Cfg.SourceIP)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		clientConn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			p.Logger.Warn("accept error", "err", err)
			continue
		}
		p.Logger.Info("new connection", "remote", clientConn.RemoteAddr())
		go p.handleConnection(ctx, clientConn)
	}
}

func (p *Proxy) handleConnection(ctx context.Context, clientConn net.Conn) {
	defer clientConn.Close()

	upstreamConn, err := p.dialUpstream(ctx)
	if err != nil {
		p.Logger.Warn("failed to connect to target", "err", err)
		return
	}
	defer upstreamConn.Close()

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopback := make(chan []byte, loopbackQueueDepth)
	subID, commands := p.Broadcast.Subscribe()
	defer p.Broadcast.Unsubscribe(subID)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer cancel()
		p.clientToUpstream(connCtx, clientConn, upstreamConn, loopback, commands)
	}()

	go func() {
		defer wg.Done()
		defer cancel()
		p.upstreamToClient(connCtx, upstreamConn, clientConn, loopback)
	}()

	wg.Wait()
	p.Logger.Info("connection closed", "remote", clientConn.RemoteAddr())
}

// dialUpstream connects to the configured target, binding the local side
// to cfg.SourceIP so the proxy replaces the authentic controller at L3.
// SO_REUSEADDR is set on the outbound socket so repeated proxy restarts
// against the same source-ip don't collide with a socket still draining
// TIME_WAIT.
func (p *Proxy) dialUpstream(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{
		LocalAddr: &net.TCPAddr{IP: net.ParseIP(p.Cfg.SourceIP)},
		Control: func(network, address string, c syscall.RawConn) error {
			return c.Control(func(fd uintptr) {
				_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
		},
	}
	targetAddr := net.JoinHostPort(p.Cfg.TargetIP, fmt.Sprintf("%d", p.Cfg.TargetPort))
	return dialer.DialContext(ctx, "tcp", targetAddr)
}

func (p *Proxy) clientToUpstream(ctx context.Context, client net.Conn, upstream net.Conn, loopback chan<- []byte, commands <-chan RodeCommand) {
	sniffer := NewSniffer("client->upstream", p.Logger)
	sessionID := DefaultSessionID

	buf := make([]byte, connBufferSize)
	reads := make(chan readResult)
	go readLoop(client, buf, reads)

	for {
		select {
		case <-ctx.Done():
			return

		case r, ok := <-reads:
			if !ok {
				return
			}
			if r.err != nil {
				p.Logger.Debug("client read error", "err", r.err)
				return
			}
			if r.n == 0 {
				return
			}
			data := r.data
			sniffer.Observe(data)
			if sid, ok := ExtractSessionID(data); ok {
				sessionID = sid
				p.Logger.Debug("session id updated", "session_id", fmt.Sprintf("%x", sessionID))
			}
			if _, err := upstream.Write(data); err != nil {
				p.Logger.Warn("failed to write to upstream", "err", err)
				return
			}

		case cmd, ok := <-commands:
			if !ok {
				continue
			}
			p.injectCommand(cmd, sessionID, upstream, loopback)
		}
	}
}

func (p *Proxy) injectCommand(cmd RodeCommand, sessionID [4]byte, upstream net.Conn, loopback chan<- []byte) {
	framed := FrameCommand(cmd, sessionID)
	p.Logger.Info("injecting command", "command", fmt.Sprintf("%T", cmd), "frames", len(framed))

	for i, frame := range framed {
		if i > 0 {
			time.Sleep(multiPayloadDelay)
		}
		select {
		case loopback <- frame:
		default:
			p.Logger.Warn("loopback queue full, dropping UI sync frame")
		}
		if _, err := upstream.Write(frame); err != nil {
			p.Logger.Warn("failed to write injected frame to upstream", "err", err)
			return
		}
	}
}

func (p *Proxy) upstreamToClient(ctx context.Context, upstream net.Conn, client net.Conn, loopback <-chan []byte) {
	sniffer := NewSniffer("upstream->client", p.Logger)

	buf := make([]byte, connBufferSize)
	reads := make(chan readResult)
	go readLoop(upstream, buf, reads)

	for {
		select {
		case <-ctx.Done():
			return

		case r, ok := <-reads:
			if !ok {
				return
			}
			if r.err != nil {
				p.Logger.Debug("upstream read error", "err", r.err)
				return
			}
			if r.n == 0 {
				return
			}
			sniffer.Observe(r.data)
			if _, err := client.Write(r.data); err != nil {
				p.Logger.Warn("failed to write to client", "err", err)
				return
			}

		case frame, ok := <-loopback:
			if !ok {
				continue
			}
			if _, err := client.Write(frame); err != nil {
				p.Logger.Warn("failed to write loopback frame to client", "err", err)
				return
			}
		}
	}
}

type readResult struct {
	data []byte
	n    int
	err  error
}

// readLoop repeatedly reads from conn into buf and publishes each result
// on results, stopping after the first EOF or error.
func readLoop(conn net.Conn, buf []byte, results chan<- readResult) {
	defer close(results)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			results <- readResult{data: data, n: n}
		}
		if err != nil {
			results <- readResult{err: err}
			return
		}
		if n == 0 {
			return
		}
	}
}
