// Package proxy wires the x11 packages and internal collaborators
// together into the one entry point cmd/xtrace calls: open the listening
// display, optionally copy its authentication cookie, spawn the
// subcommand, and drive the event loop until it's done.
package proxy

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/xtracego/xtrace/internal/authcopy"
	"github.com/xtracego/xtrace/internal/banner"
	"github.com/xtracego/xtrace/internal/render"
	"github.com/xtracego/xtrace/internal/settings"
	"github.com/xtracego/xtrace/x11/atoms"
	"github.com/xtracego/xtrace/x11/ioloop"
	"github.com/xtracego/xtrace/x11/listen"
	"github.com/xtracego/xtrace/x11/parser"
)

// Proxy is one configured run: a listening display, an upstream display,
// and the settings controlling how messages are rendered and gated.
type Proxy struct {
	settings settings.Settings
	out      io.Writer
	authFile string // path to a crafted Xauthority for the listening display, if CopyAuth succeeded
}

// New validates settings and prepares a Proxy, without yet opening any
// sockets or spawning anything.
func New(s settings.Settings) (*Proxy, error) {
	if s.InDisplay == "" {
		return nil, fmt.Errorf("proxy: new: no upstream display (set -d or $DISPLAY)")
	}
	out := io.Writer(os.Stdout)
	if s.LogPath != "" {
		f, err := os.Create(s.LogPath)
		if err != nil {
			return nil, fmt.Errorf("proxy: new: open log path: %w", err)
		}
		out = f
	}
	return &Proxy{settings: s, out: out}, nil
}

// Run opens the listening and upstream displays, spawns the subcommand
// (if any), and drives the event loop to completion, returning the exit
// code the process should use.
func (p *Proxy) Run() (int, error) {
	listenDisplay, err := listen.ParseDisplay(p.settings.OutDisplay)
	if err != nil {
		return 1, fmt.Errorf("proxy: run: %w", err)
	}
	upstreamDisplay, err := listen.ParseDisplay(p.settings.InDisplay)
	if err != nil {
		return 1, fmt.Errorf("proxy: run: %w", err)
	}

	if p.settings.CopyAuth {
		if err := p.copyAuth(upstreamDisplay, listenDisplay); err != nil {
			fmt.Fprintf(os.Stderr, "xtrace: warning: %v\n", err)
		} else {
			defer os.Remove(p.authFile)
		}
	}

	banner.Write(p.out, p.settings.InDisplay, p.settings.OutDisplay)

	var childPID int
	if len(p.settings.SubcommandArgv) > 0 {
		pid, err := p.spawnSubcommand(listenDisplay)
		if err != nil {
			return 1, fmt.Errorf("proxy: run: spawn subcommand: %w", err)
		}
		childPID = pid
	}

	renderOpt := render.Options{
		Multiline:          p.settings.Multiline,
		Plain:              p.settings.LogPath != "",
		Verbose:            p.settings.Verbose,
		RelativeTimestamps: p.settings.RelativeTimestamps,
	}
	var debug func(string)
	if p.settings.ReadWriteDebug {
		debug = func(line string) { fmt.Fprintln(os.Stderr, "xtrace: "+line) }
	}
	var prefetch atoms.PrefetchFunc
	if p.settings.PrefetchAtoms {
		prefetch = p.prefetchAtoms
	}
	loop, err := ioloop.New(ioloop.Options{
		ListenDisplay:   listenDisplay,
		UpstreamDisplay: upstreamDisplay,
		Interactive:     p.settings.Interactive,
		DenyExtensions:  p.settings.DenyExtensions,
		ChildPID:        childPID,
		StopWhenNone:    childPID != 0 && !p.settings.KeepRunning,
		Debug:           debug,
		Prefetch:        prefetch,
		Sink: func(m parser.Message) {
			render.Write(p.out, m, renderOpt)
			if p.settings.Unbuffered {
				if f, ok := p.out.(*os.File); ok {
					f.Sync()
				}
			}
		},
	})
	if err != nil {
		return 1, fmt.Errorf("proxy: run: %w", err)
	}
	defer loop.Close()

	return loop.Run()
}

// prefetchAtoms supplies atom names beyond the predefined table from an
// externally maintained list — spec.md leaves the fetch mechanism outside
// the core, so this reads one name per line from $XTRACE_ATOMS_FILE,
// assigned to atom ids starting just past the predefined table. Unset or
// unreadable, it contributes nothing.
func (p *Proxy) prefetchAtoms() map[uint32]string {
	path := os.Getenv("XTRACE_ATOMS_FILE")
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	out := make(map[uint32]string)
	id := uint32(atoms.PredefinedMax + 1)
	for _, name := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if name == "" {
			continue
		}
		out[id] = name
		id++
	}
	return out
}

func (p *Proxy) copyAuth(upstream, listenDisplay listen.Display) error {
	record, err := authcopy.Copy(fmt.Sprintf("%d", upstream.Number), fmt.Sprintf("%d", listenDisplay.Number))
	if err != nil {
		return fmt.Errorf("copy Xauthority: %w", err)
	}
	f, err := os.CreateTemp("", "xtrace-xauth-*")
	if err != nil {
		return fmt.Errorf("create Xauthority copy: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(record); err != nil {
		return fmt.Errorf("write Xauthority copy: %w", err)
	}
	p.authFile = f.Name()
	return nil
}

func (p *Proxy) spawnSubcommand(listenDisplay listen.Display) (int, error) {
	argv := p.settings.SubcommandArgv
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	env := append(os.Environ(), "DISPLAY="+displayEnv(listenDisplay))
	if p.authFile != "" {
		env = append(env, "XAUTHORITY="+p.authFile)
	}
	cmd.Env = env
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	return cmd.Process.Pid, nil
}

func displayEnv(d listen.Display) string {
	if d.IsUnix() {
		return fmt.Sprintf(":%d", d.Number)
	}
	return fmt.Sprintf("%s:%d", d.Host, d.Number)
}
