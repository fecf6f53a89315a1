// Package settings parses the proxy's command-line flags into a single
// Settings value, using the standard library's flag.NewFlagSet rather
// than a third-party CLI framework.
package settings

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// Settings holds every CLI-configurable knob.
type Settings struct {
	InDisplay  string // display to connect to (the real X server), settings or env DISPLAY
	OutDisplay string // display the proxy itself listens on, settings or env FAKEDISPLAY

	ReadWriteDebug     bool // log the byte count of each socket read/write
	CopyAuth           bool // copy the real Xauthority cookie for OutDisplay
	KeepRunning        bool // keep running after the spawned subcommand (if any) exits
	DenyExtensions     bool // rewrite every QueryExtension reply to present=false
	Multiline          bool // one field per line in message structures
	Verbose            bool // include otherwise-elided fields (opcode, length)
	RelativeTimestamps bool // timestamp messages relative to connection start
	PrefetchAtoms      bool // seed the atom cache beyond the predefined table
	Unbuffered         bool // flush the transcript after every message

	Interactive bool // gate server-bound writes on integer counts read from stdin

	LogPath string // "" means stdout

	SubcommandArgv []string
}

// Parse builds a Settings from argv (os.Args[1:] in production), writing
// usage text to out on -h/--help or a parse error.
func Parse(argv []string, out io.Writer) (Settings, error) {
	fs := flag.NewFlagSet("xtrace", flag.ContinueOnError)
	fs.SetOutput(out)

	var s Settings
	fs.StringVar(&s.InDisplay, "d", envOr("DISPLAY", ""), "display to connect to")
	fs.StringVar(&s.InDisplay, "display", envOr("DISPLAY", ""), "display to connect to")
	fs.StringVar(&s.OutDisplay, "D", envOr("FAKEDISPLAY", ":9"), "display to listen on")
	fs.StringVar(&s.OutDisplay, "proxydisplay", envOr("FAKEDISPLAY", ":9"), "display to listen on")
	fs.BoolVar(&s.DenyExtensions, "e", false, "answer every QueryExtension as absent")
	fs.BoolVar(&s.DenyExtensions, "denyextensions", false, "answer every QueryExtension as absent")
	fs.BoolVar(&s.KeepRunning, "k", false, "keep running after the subcommand exits")
	fs.BoolVar(&s.KeepRunning, "keeprunning", false, "keep running after the subcommand exits")
	fs.BoolVar(&s.ReadWriteDebug, "w", false, "log the byte count of each read/write")
	fs.BoolVar(&s.ReadWriteDebug, "readwritedebug", false, "log the byte count of each read/write")
	fs.StringVar(&s.LogPath, "o", "", "write the transcript here instead of stdout")
	fs.StringVar(&s.LogPath, "outfile", "", "write the transcript here instead of stdout")
	fs.BoolVar(&s.Multiline, "m", false, "multi-line message formatting")
	fs.BoolVar(&s.Multiline, "multiline", false, "multi-line message formatting")
	fs.BoolVar(&s.Verbose, "v", false, "include opcode and length in each message")
	fs.BoolVar(&s.Verbose, "verbose", false, "include opcode and length in each message")
	fs.BoolVar(&s.RelativeTimestamps, "r", false, "timestamp messages relative to connection start")
	fs.BoolVar(&s.RelativeTimestamps, "relativetimestamps", false, "timestamp messages relative to connection start")
	fs.BoolVar(&s.PrefetchAtoms, "p", false, "seed the atom cache beyond the predefined table")
	fs.BoolVar(&s.PrefetchAtoms, "prefetchatoms", false, "seed the atom cache beyond the predefined table")
	fs.BoolVar(&s.Unbuffered, "u", false, "flush the transcript after every message")
	fs.BoolVar(&s.Unbuffered, "unbuffered", false, "flush the transcript after every message")
	fs.BoolVar(&s.CopyAuth, "copyauth", true, "copy the real Xauthority cookie to the proxy display")
	fs.BoolVar(&s.Interactive, "i", false, "hold back server-bound messages until released from stdin")
	fs.BoolVar(&s.Interactive, "interactive", false, "hold back server-bound messages until released from stdin")

	fs.Usage = func() {
		fmt.Fprintf(out, "usage: xtrace [flags] [--] subcommand [args...]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return Settings{}, err
	}
	s.SubcommandArgv = fs.Args()
	return s, nil
}

func envOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}
