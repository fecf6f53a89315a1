// Command xtrace is an intercepting X11 proxy: it sits between an X
// client and the real display server, decodes every request, reply,
// event, and error it forwards, and prints a transcript of what it saw.
package main

import (
	"fmt"
	"os"

	"github.com/xtracego/xtrace/internal/settings"
	"github.com/xtracego/xtrace/proxy"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	s, err := settings.Parse(argv, os.Stderr)
	if err != nil {
		return 2
	}

	p, err := proxy.New(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xtrace: %v\n", err)
		return 1
	}

	code, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "xtrace: %v\n", err)
		return 1
	}
	return code
}
