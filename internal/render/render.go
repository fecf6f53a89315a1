// Package render turns a parsed protocol message into the human-readable
// transcript line(s) the proxy prints, using lipgloss styles borrowed from
// a captured-event TUI — bold message names, faint field text, a colored
// direction marker — except rendered to a plain io.Writer transcript
// instead of a terminal UI.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/xtracego/xtrace/x11/parser"
)

var (
	nameStyle      = lipgloss.NewStyle().Bold(true)
	fieldStyle     = lipgloss.NewStyle().Faint(true)
	clientToServer = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Render("-->")
	serverToClient = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("<--")
)

// Options controls line formatting.
type Options struct {
	Multiline          bool // one field per line, indented, instead of a single line
	Plain              bool // disable lipgloss styling (e.g. -o file output)
	Verbose            bool // include otherwise-elided fields (opcode, length)
	RelativeTimestamps bool // subtract the connection's start time from each timestamp
}

// Line formats one message as the proxy's transcript renders it.
func Line(m parser.Message, opt Options) string {
	arrow := clientToServer
	plainArrow := "-->"
	if m.Direction == parser.ServerToClient {
		arrow = serverToClient
		plainArrow = "<--"
	}
	if opt.Plain {
		arrow = plainArrow
	}
	name := m.Decoded.Name
	if !opt.Plain {
		name = nameStyle.Render(name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s ", timestamp(m, opt))
	fmt.Fprintf(&b, "%s #%d %s", arrow, m.Sequence, name)
	if opt.Verbose {
		fmt.Fprintf(&b, " [opcode=%d length=%d]", m.Decoded.Opcode, m.Decoded.Length)
	}
	if len(m.Decoded.Fields) == 0 {
		return b.String()
	}

	if opt.Multiline {
		for _, f := range m.Decoded.Fields {
			text := fmt.Sprintf("%s=%s", f.Name, f.Text)
			if !opt.Plain {
				text = fieldStyle.Render(text)
			}
			fmt.Fprintf(&b, "\n    %s", text)
		}
		return b.String()
	}

	parts := make([]string, 0, len(m.Decoded.Fields))
	for _, f := range m.Decoded.Fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f.Name, f.Text))
	}
	joined := strings.Join(parts, ", ")
	if !opt.Plain {
		joined = fieldStyle.Render(joined)
	}
	fmt.Fprintf(&b, " (%s)", joined)
	return b.String()
}

// timestamp renders m's timestamp per -r/--relativetimestamps: an elapsed
// "+Nms" since the connection's accept time, or a wall-clock HH:MM:SS.mmm
// otherwise.
func timestamp(m parser.Message, opt Options) string {
	if opt.RelativeTimestamps {
		return fmt.Sprintf("+%dms", m.TimestampMS-m.ConnStartMS)
	}
	return time.UnixMilli(m.TimestampMS).Format("15:04:05.000")
}

// Write formats m and writes it to w, followed by a newline.
func Write(w io.Writer, m parser.Message, opt Options) error {
	_, err := fmt.Fprintln(w, Line(m, opt))
	return err
}
