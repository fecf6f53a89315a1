// Package banner prints the one-line run identification header the
// transcript opens with: which display is being proxied to which, and a
// run id a log aggregator can use to tell two overlapping runs apart.
package banner

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Line is the banner text for one run, proxying inDisplay to outDisplay.
func Line(inDisplay, outDisplay string) string {
	return fmt.Sprintf("xtrace run %s: %s -> %s", uuid.NewString(), outDisplay, inDisplay)
}

// Write prints Line to w.
func Write(w io.Writer, inDisplay, outDisplay string) error {
	_, err := fmt.Fprintln(w, Line(inDisplay, outDisplay))
	return err
}
