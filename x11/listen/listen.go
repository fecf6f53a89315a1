// Package listen implements the display-name grammar and the listening
// socket setup for both the proxy-facing display and the upstream display
// it forwards to.
package listen

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"
)

// Display is a parsed X11 display name: [proto/][host]:display[.screen].
type Display struct {
	Proto  string
	Host   string
	Number int
	Screen int
}

var displayPattern = regexp.MustCompile(`^(?:([a-zA-Z0-9]+)/)?([^:]*):(\d+)(?:\.(\d+))?$`)

// ParseDisplay parses a display name per the grammar
// "[proto/][host]:display[.screen]".
func ParseDisplay(name string) (Display, error) {
	m := displayPattern.FindStringSubmatch(name)
	if m == nil {
		return Display{}, fmt.Errorf("listen: parse display %q: malformed display name", name)
	}
	num, err := strconv.Atoi(m[3])
	if err != nil {
		return Display{}, fmt.Errorf("listen: parse display %q: %w", name, err)
	}
	screen := 0
	if m[4] != "" {
		screen, err = strconv.Atoi(m[4])
		if err != nil {
			return Display{}, fmt.Errorf("listen: parse display %q: %w", name, err)
		}
	}
	return Display{Proto: m[1], Host: m[2], Number: num, Screen: screen}, nil
}

// IsUnix reports whether d resolves to a Unix-domain socket: no host, or a
// host explicitly named "unix".
func (d Display) IsUnix() bool {
	return d.Host == "" || d.Host == "unix"
}

// SocketPath returns the filesystem Unix-domain socket path for
// d, valid only when IsUnix() is true.
func (d Display) SocketPath() string {
	return fmt.Sprintf("/tmp/.X11-unix/X%d", d.Number)
}

// TCPAddr returns the host:port TCP address for d, valid only when
// IsUnix() is false.
func (d Display) TCPAddr() string {
	return fmt.Sprintf("%s:%d", d.Host, 6000+d.Number)
}

// Listen opens a listening socket for d: a Unix-domain socket at
// /tmp/.X11-unix/X<n>, or a TCP socket with SO_KEEPALIVE set.
func Listen(d Display) (net.Listener, error) {
	if d.IsUnix() {
		ln, err := net.Listen("unix", d.SocketPath())
		if err != nil {
			return nil, fmt.Errorf("listen: unix socket %s: %w", d.SocketPath(), err)
		}
		return ln, nil
	}
	ln, err := net.Listen("tcp", d.TCPAddr())
	if err != nil {
		return nil, fmt.Errorf("listen: tcp socket %s: %w", d.TCPAddr(), err)
	}
	if tl, ok := ln.(*net.TCPListener); ok {
		if err := setKeepAlive(tl); err != nil {
			return nil, fmt.Errorf("listen: set keepalive on %s: %w", d.TCPAddr(), err)
		}
	}
	return ln, nil
}

// Dial opens the upstream connection for d, once per new client.
func Dial(d Display) (net.Conn, error) {
	if d.IsUnix() {
		conn, err := net.Dial("unix", d.SocketPath())
		if err != nil {
			return nil, fmt.Errorf("listen: dial unix socket %s: %w", d.SocketPath(), err)
		}
		return conn, nil
	}
	conn, err := net.Dial("tcp", d.TCPAddr())
	if err != nil {
		return nil, fmt.Errorf("listen: dial tcp socket %s: %w", d.TCPAddr(), err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := setKeepAlive(tc); err != nil {
			return nil, fmt.Errorf("listen: set keepalive on %s: %w", d.TCPAddr(), err)
		}
	}
	return conn, nil
}

type syscallConner interface {
	SyscallConn() (syscall.RawConn, error)
}

func setKeepAlive(tc syscallConner) error {
	sc, err := tc.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	err = sc.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
