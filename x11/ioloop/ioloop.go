// Package ioloop drives the single-threaded, cooperative event loop: one
// readiness wait per iteration, no locks, no goroutines. It owns the
// registry of live connections and is the only place that touches raw
// file descriptors directly (via golang.org/x/sys/unix), so that ancillary
// file-descriptor forwarding (SCM_RIGHTS) stays on the same explicit
// suspension point as ordinary reads and writes.
package ioloop

import (
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/xtracego/xtrace/x11/atoms"
	"github.com/xtracego/xtrace/x11/listen"
	"github.com/xtracego/xtrace/x11/parser"
	"github.com/xtracego/xtrace/x11/xconn"
)

// Sink receives every parsed message, in the order the loop produced it.
// Rendering and writing it out is the caller's concern, not the loop's.
type Sink func(parser.Message)

// Options configures one run of the loop.
type Options struct {
	ListenDisplay   listen.Display
	UpstreamDisplay listen.Display
	Interactive     bool  // gate server-bound writes behind stdin line counts
	DenyExtensions  bool  // rewrite every QueryExtension reply to present=false
	ChildPID        int   // pid of the spawned subcommand, 0 if none
	StopWhenNone    bool  // exit once ChildPID has exited and no connections remain
	Sink            Sink
	Debug           func(line string) // non-nil under -w/--readwritedebug: reports each buffer read/write size
	Prefetch        atoms.PrefetchFunc // non-nil under -p/--prefetchatoms: seeds each new connection's atom cache
}

type endpoint struct {
	conn net.Conn
	fd   int
	buf  *xconn.RingBuffer
	fdq  []int
	eof  bool
}

type client struct {
	conn     *xconn.Connection
	toServer endpoint
	toClient endpoint
}

// Loop is the live state of one running proxy: its listener, its accepted
// clients, and (in interactive mode) the gating counter fed by stdin.
type Loop struct {
	opt      Options
	listener net.Listener
	listenFD int
	clients  map[int]*client
	nextID   int

	allowSent int // interactive mode: messages still permitted to reach the server
	stdinEOF  bool

	exitCode int
}

// New opens the listening socket for opt.ListenDisplay and returns a Loop
// ready to Run.
func New(opt Options) (*Loop, error) {
	ln, err := listen.Listen(opt.ListenDisplay)
	if err != nil {
		return nil, fmt.Errorf("ioloop: new: %w", err)
	}
	fd, err := fdOf(ln)
	if err != nil {
		return nil, fmt.Errorf("ioloop: new: listener fd: %w", err)
	}
	return &Loop{opt: opt, listener: ln, listenFD: fd, clients: map[int]*client{}}, nil
}

// Close releases the listening socket (and, for a Unix-domain display,
// unlinks its socket file).
func (l *Loop) Close() error {
	err := l.listener.Close()
	if l.opt.ListenDisplay.IsUnix() {
		os.Remove(l.opt.ListenDisplay.SocketPath())
	}
	return err
}

// Run drives the loop until a child process (if any) has exited, every
// connection has closed, and StopWhenNone is set — or until an
// unrecoverable error occurs. It returns the process exit code to use.
func (l *Loop) Run() (int, error) {
	for {
		done, err := l.iterate()
		if err != nil {
			return 1, err
		}
		if done {
			return l.exitCode, nil
		}
	}
}

func (l *Loop) iterate() (bool, error) {
	var readSet, writeSet unix.FdSet
	maxFD := l.listenFD
	fdSet(&readSet, l.listenFD)

	if l.opt.Interactive && !l.stdinEOF {
		fdSet(&readSet, unix.Stdin)
		if unix.Stdin > maxFD {
			maxFD = unix.Stdin
		}
	}

	for _, c := range l.clients {
		if m := armClient(c, &readSet, &writeSet, l.opt.Interactive, l.allowSent); m > maxFD {
			maxFD = m
		}
	}

	n, err := unix.Select(maxFD+1, &readSet, &writeSet, nil, nil)
	if err == unix.EINTR {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ioloop: select: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if fdIsSet(&readSet, l.listenFD) {
		l.acceptClient()
	}
	if l.opt.Interactive && fdIsSet(&readSet, unix.Stdin) {
		l.readStdinGate()
	}
	for id, c := range l.clients {
		l.serviceClient(id, c, &readSet, &writeSet)
	}
	l.reapChild()

	if l.opt.StopWhenNone && l.opt.ChildPID == 0 && len(l.clients) == 0 {
		return true, nil
	}
	return false, nil
}

// armClient sets read/write readiness bits for one connection's two fds and
// returns the highest fd number it touched. c.toClient.buf holds
// client-request bytes queued to go out to the upstream server, gated by
// interactive mode; c.toServer.buf holds replies/events queued to go out to
// the client and is never gated.
func armClient(c *client, readSet, writeSet *unix.FdSet, interactive bool, allowSent int) int {
	maxFD := 0
	if !c.toServer.eof && c.toServer.buf.Free() > 0 && len(c.toServer.fdq) < xconn.MaxFDQueue {
		fdSet(readSet, c.toServer.fd)
	}
	if !c.toClient.eof && c.toClient.buf.Free() > 0 && len(c.toClient.fdq) < xconn.MaxFDQueue {
		fdSet(readSet, c.toClient.fd)
	}
	if (c.toClient.buf.Len() > 0 || len(c.toClient.fdq) > 0) && (!interactive || allowSent > 0) {
		fdSet(writeSet, c.toClient.fd)
	}
	if c.toServer.buf.Len() > 0 || len(c.toServer.fdq) > 0 {
		fdSet(writeSet, c.toServer.fd)
	}
	if c.toClient.fd > maxFD {
		maxFD = c.toClient.fd
	}
	if c.toServer.fd > maxFD {
		maxFD = c.toServer.fd
	}
	return maxFD
}

func (l *Loop) acceptClient() {
	conn, err := l.listener.Accept()
	if err != nil {
		return
	}
	upstream, err := listen.Dial(l.opt.UpstreamDisplay)
	if err != nil {
		conn.Close()
		return
	}
	cfd, err1 := fdOf(conn)
	sfd, err2 := fdOf(upstream)
	if err1 != nil || err2 != nil {
		conn.Close()
		upstream.Close()
		return
	}
	l.nextID++
	cc := xconn.New(l.nextID, conn.RemoteAddr().String(), time.Now().UnixMilli())
	cc.DenyExtensions = l.opt.DenyExtensions
	atoms.SeedPredefined(cc, l.opt.Prefetch)
	c := &client{
		conn:     cc,
		toServer: endpoint{conn: conn, fd: cfd, buf: xconn.NewRingBuffer(xconn.MinBufCapacity)},
		toClient: endpoint{conn: upstream, fd: sfd, buf: xconn.NewRingBuffer(xconn.MinBufCapacity)},
	}
	l.clients[l.nextID] = c
}

// serviceClient performs the read/parse/write steps for one connection's
// two fds. toServer.fd is the accepted client socket (bytes read here are
// client requests, forwarded toward the upstream server); toClient.fd is
// the upstream socket (bytes read here are server replies/events,
// forwarded toward the client).
func (l *Loop) serviceClient(id int, c *client, readSet, writeSet *unix.FdSet) {
	if fdIsSet(readSet, c.toServer.fd) {
		n := readInto(c.conn.ClientBuf, &c.toServer, &c.toClient.fdq)
		l.debugf("conn %d: read %d bytes from client", id, n)
		before := c.conn.ClientBuf.PeekAll()
		msgs, err := parser.ParseClient(c.conn)
		if err == nil {
			l.deliver(msgs)
			if l.opt.Interactive {
				l.allowSent -= len(msgs)
			}
		}
		forwardParsed(before, c.conn.ClientBuf, &c.toClient, c.conn.Phase == xconn.Authentication)
	}
	if fdIsSet(readSet, c.toClient.fd) {
		n := readInto(c.conn.ServerBuf, &c.toClient, &c.toServer.fdq)
		l.debugf("conn %d: read %d bytes from server", id, n)
		before := c.conn.ServerBuf.PeekAll()
		msgs, err := parser.ParseServer(c.conn)
		if err == nil {
			l.deliver(msgs)
		}
		forwardParsed(before, c.conn.ServerBuf, &c.toServer, c.conn.Phase == xconn.Authentication)
	}
	if fdIsSet(writeSet, c.toServer.fd) {
		n := flushOut(&c.toServer)
		l.debugf("conn %d: wrote %d bytes to client", id, n)
	}
	if fdIsSet(writeSet, c.toClient.fd) {
		n := flushOut(&c.toClient)
		l.debugf("conn %d: wrote %d bytes to server", id, n)
	}

	if (c.toServer.eof && c.toServer.buf.Len() == 0) || (c.toClient.eof && c.toClient.buf.Len() == 0) {
		c.toServer.conn.Close()
		c.toClient.conn.Close()
		c.conn.Advance(xconn.Closed)
		delete(l.clients, id)
	}
}

// debugf reports a read/write byte count through Debug, a no-op unless
// -w/--readwritedebug wired one in.
func (l *Loop) debugf(format string, args ...interface{}) {
	if l.opt.Debug == nil {
		return
	}
	l.opt.Debug(fmt.Sprintf(format, args...))
}

func (l *Loop) deliver(msgs []parser.Message) {
	if l.opt.Sink == nil {
		return
	}
	for _, m := range msgs {
		l.opt.Sink(m)
	}
}

// readInto reads available bytes from ep's socket into dst (the
// connection's own protocol-level buffer, distinct from ep.buf which holds
// bytes already decided for the *other* direction). Any ancillary file
// descriptors received alongside are appended, in order, to destFDQ — the
// queue that will later be forwarded to the peer. EOF marks ep for
// half-close propagation rather than erroring the loop.
func readInto(dst *xconn.RingBuffer, ep *endpoint, destFDQ *[]int) int {
	free := dst.Free()
	if free == 0 {
		return 0
	}
	tmp := make([]byte, free)
	oob := make([]byte, unix.CmsgSpace(4*xconn.MaxFDQueue))
	n, oobn, _, _, err := unix.Recvmsg(ep.fd, tmp, oob, 0)
	if n > 0 {
		dst.Write(tmp[:n])
	}
	if oobn > 0 {
		if msgs, parseErr := unix.ParseSocketControlMessage(oob[:oobn]); parseErr == nil {
			for _, msg := range msgs {
				if fds, rightsErr := unix.ParseUnixRights(&msg); rightsErr == nil {
					*destFDQ = append(*destFDQ, fds...)
				}
			}
		}
	}
	if n == 0 || (err != nil && err != unix.EAGAIN) {
		ep.eof = true
	}
	return n
}

// forwardParsed moves the prefix of before that the just-completed
// ParseClient/ParseServer call fully decoded (and therefore already
// advanced src past) into peer's outbound buffer. It must never forward
// the trailing fragment of a message still waiting on more bytes to
// arrive — src.Len() after parsing tells us exactly how much of before
// remains unconsumed, since parsing is the only thing that can have
// advanced src between the two calls.
//
// During AUTHENTICATION the parser leaves the buffer untouched by design
// (its payload isn't framed X11 protocol), so every currently buffered
// byte is forwarded and removed here instead.
func forwardParsed(before []byte, src *xconn.RingBuffer, peer *endpoint, authentication bool) {
	n := len(before) - src.Len()
	if authentication {
		n = len(before)
	}
	if n <= 0 {
		return
	}
	b := before[:n]
	if peer.buf.Free() < len(b) {
		b = b[:peer.buf.Free()]
	}
	peer.buf.Write(b)
	if authentication {
		src.Advance(len(b))
	}
}

func flushOut(ep *endpoint) int {
	n := ep.buf.Len()
	if n == 0 && len(ep.fdq) == 0 {
		return 0
	}
	b := ep.buf.Peek(n)
	var oob []byte
	if len(ep.fdq) > 0 {
		oob = unix.UnixRights(ep.fdq...)
	}
	sent, err := unix.SendmsgN(ep.fd, b, oob, nil, 0)
	if sent > 0 {
		ep.buf.Advance(sent)
	}
	if err == nil && len(ep.fdq) > 0 {
		ep.fdq = nil
	}
	return sent
}

func (l *Loop) readStdinGate() {
	buf := make([]byte, 256)
	n, err := unix.Read(unix.Stdin, buf)
	if n <= 0 || err != nil {
		l.stdinEOF = true
		return
	}
	line := string(buf[:n])
	var count int
	if _, scanErr := fmt.Sscanf(line, "%d", &count); scanErr != nil {
		count = 1 // an empty line releases exactly one message
	}
	l.allowSent += count
}

func (l *Loop) reapChild() {
	if l.opt.ChildPID == 0 {
		return
	}
	var ws unix.WaitStatus
	pid, err := unix.Wait4(l.opt.ChildPID, &ws, unix.WNOHANG, nil)
	if err != nil || pid != l.opt.ChildPID {
		return
	}
	switch {
	case ws.Exited():
		l.exitCode = ws.ExitStatus()
	case ws.Signaled():
		l.exitCode = 128 + int(ws.Signal())
	}
	l.opt.ChildPID = 0
}

type syscallConner interface {
	SyscallConn() (syscall.RawConn, error)
}

func fdOf(c any) (int, error) {
	sc, ok := c.(syscallConner)
	if !ok {
		return 0, fmt.Errorf("ioloop: %T does not expose a raw file descriptor", c)
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return 0, err
	}
	var fd int
	ctlErr := raw.Control(func(f uintptr) { fd = int(f) })
	if ctlErr != nil {
		return 0, ctlErr
	}
	return fd, nil
}

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}

func fdIsSet(set *unix.FdSet, fd int) bool {
	return set.Bits[fd/64]&(1<<(uint(fd)%64)) != 0
}
