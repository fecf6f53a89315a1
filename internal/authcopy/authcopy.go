// Package authcopy copies the real Xauthority cookie for the upstream
// display onto the proxy's own listening display, so clients that expect
// to authenticate against the proxy see a cookie the real server would
// also accept.
package authcopy

import (
	"encoding/binary"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

const familyAFLocal = 256

// entry is one record of the Xauthority binary format: a repeated run of
// (family, address, display, auth-method, auth-data), each a uint16
// length prefix followed by that many bytes, all big-endian.
type entry struct {
	family   uint16
	addr     []byte
	disp     []byte
	authMeth []byte
	authData []byte
}

// Copy reads the caller's Xauthority file, finds the entry for
// (hostname, upstreamDisplay), and returns a new Xauthority record for
// proxyDisplay carrying the same authentication method and cookie.
func Copy(upstreamDisplay, proxyDisplay string) ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("authcopy: hostname: %w", err)
	}
	raw, err := readXauthority()
	if err != nil {
		return nil, fmt.Errorf("authcopy: read Xauthority: %w", err)
	}
	entries, err := parseEntries(raw)
	if err != nil {
		return nil, fmt.Errorf("authcopy: parse Xauthority: %w", err)
	}
	for _, e := range entries {
		if e.family != familyAFLocal {
			continue
		}
		if string(e.addr) != hostname || string(e.disp) != upstreamDisplay {
			continue
		}
		return encodeEntry(entry{
			family:   e.family,
			addr:     []byte(hostname),
			disp:     []byte(proxyDisplay),
			authMeth: e.authMeth,
			authData: e.authData,
		}), nil
	}
	return nil, fmt.Errorf("authcopy: no Xauthority entry for %s:%s", hostname, upstreamDisplay)
}

func readXauthority() ([]byte, error) {
	path := os.Getenv("XAUTHORITY")
	if path == "" {
		u, err := user.Current()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(u.HomeDir, ".Xauthority")
	} else if strings.HasPrefix(path, "~/") {
		u, err := user.Current()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(u.HomeDir, path[1:])
	}
	return os.ReadFile(path)
}

func parseEntries(raw []byte) ([]entry, error) {
	var out []entry
	for len(raw) > 0 {
		if len(raw) < 2 {
			break
		}
		family := binary.BigEndian.Uint16(raw)
		idx := 2

		addr, err := extractString(raw[idx:])
		if err != nil {
			return nil, err
		}
		idx += 2 + len(addr)

		disp, err := extractString(raw[idx:])
		if err != nil {
			return nil, err
		}
		idx += 2 + len(disp)

		authMeth, err := extractString(raw[idx:])
		if err != nil {
			return nil, err
		}
		idx += 2 + len(authMeth)

		authData, err := extractString(raw[idx:])
		if err != nil {
			return nil, err
		}
		idx += 2 + len(authData)

		out = append(out, entry{family: family, addr: addr, disp: disp, authMeth: authMeth, authData: authData})
		raw = raw[idx:]
	}
	return out, nil
}

func extractString(s []byte) ([]byte, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("authcopy: truncated length prefix")
	}
	n := binary.BigEndian.Uint16(s)
	if len(s[2:]) < int(n) {
		return nil, fmt.Errorf("authcopy: truncated string (want %d, have %d)", n, len(s[2:]))
	}
	return s[2 : 2+n], nil
}

func encodeString(s []byte) []byte {
	out := make([]byte, 2, 2+len(s))
	binary.BigEndian.PutUint16(out, uint16(len(s)))
	return append(out, s...)
}

func encodeEntry(e entry) []byte {
	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, e.family)
	out = append(out, encodeString(e.addr)...)
	out = append(out, encodeString(e.disp)...)
	out = append(out, encodeString(e.authMeth)...)
	out = append(out, encodeString(e.authData)...)
	return out
}
