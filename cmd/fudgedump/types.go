package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/wippyai/fudge/wire"
)

// listTypes writes the type registry: id, name and payload width.
func listTypes(out io.Writer, p painter) {
	for _, t := range wire.Types() {
		width := "variable"
		if n, ok := t.FixedWidth(); ok {
			width = strconv.Itoa(n)
		}
		if ew := t.ElementWidth(); ew > 0 && t.IsArray() {
			width += fmt.Sprintf(" (%d per element)", ew)
		}
		fmt.Fprintf(out, "%3d  %s %s\n", int(t), p.paint(typeStyle, fmt.Sprintf("%-10s", t.String())), width)
	}
}
