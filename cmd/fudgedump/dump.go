package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/fudge"
	"github.com/wippyai/fudge/wire"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// painter applies styles only when output is styled.
type painter struct {
	styled bool
}

func (p painter) paint(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// useColor resolves the color setting against the output file.
func useColor(setting string, f *os.File) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of f, or 0 when it is not a terminal.
func terminalWidth(f *os.File) int {
	if !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

type dumper struct {
	out   io.Writer
	cfg   Config
	p     painter
	width int
}

func (d *dumper) envelope(env *fudge.Envelope, source string) {
	title := d.p.paint(titleStyle, "Fudge envelope")
	fmt.Fprintf(d.out, "%s %s\n", title, source)
	fmt.Fprintf(d.out, "directives=%d schema=%d taxonomy=%d fields=%d\n\n",
		env.Directives(), env.SchemaVersion(), env.Taxonomy(), env.Message().Len())
	d.message(env.Message(), 0)
}

func (d *dumper) message(m *fudge.Message, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range m.Fields() {
		d.line(indent + d.describe(f))
		if f.Type() != wire.TypeMessage {
			continue
		}
		child, err := f.Message()
		if err != nil {
			continue
		}
		if depth+1 >= d.cfg.MaxDepth {
			d.line(indent + "  ...")
			continue
		}
		d.message(child, depth+1)
	}
}

// line writes s, cut to the terminal width when there is one.
func (d *dumper) line(s string) {
	if d.width > 0 && lipgloss.Width(s) > d.width {
		s = truncate(s, d.width)
	}
	fmt.Fprintln(d.out, s)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// describe renders one field as "[i] name #ordinal type = value".
func (d *dumper) describe(f *fudge.Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d]", f.Index())
	if name, ok := f.Name(); ok {
		b.WriteString(" ")
		b.WriteString(d.p.paint(nameStyle, name))
	}
	if ord, ok := f.Ordinal(); ok {
		fmt.Fprintf(&b, " #%d", ord)
	}
	b.WriteString(" ")
	b.WriteString(d.p.paint(typeStyle, f.Type().String()))
	if v := summarize(f, d.cfg.Preview); v != "" {
		b.WriteString(" = ")
		b.WriteString(d.p.paint(valueStyle, v))
	}
	return b.String()
}

// summarize renders a field value for a single line. Byte payloads show a
// hex preview of at most preview bytes.
func summarize(f *fudge.Field, preview int) string {
	switch t := f.Type(); {
	case t == wire.TypeIndicator:
		return ""
	case t == wire.TypeMessage:
		return fmt.Sprintf("{%d fields}", f.ElementCount())
	case t == wire.TypeString:
		return fmt.Sprintf("%q", f.Value())
	case t.IsByteArray() || !t.Known():
		raw, err := f.Bytes()
		if err != nil {
			return err.Error()
		}
		return hexPreview(raw, preview)
	}
	return fmt.Sprint(f.Value())
}

func hexPreview(b []byte, limit int) string {
	if len(b) <= limit {
		return fmt.Sprintf("<%d bytes> %s", len(b), hex.EncodeToString(b))
	}
	return fmt.Sprintf("<%d bytes> %s…", len(b), hex.EncodeToString(b[:limit]))
}

func readEnvelope(path string) (*fudge.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	env, err := fudge.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return env, nil
}

func runDump(cfg Config, path string) error {
	env, err := readEnvelope(path)
	if err != nil {
		return err
	}
	d := &dumper{
		out:   os.Stdout,
		cfg:   cfg,
		p:     painter{styled: useColor(cfg.Color, os.Stdout)},
		width: terminalWidth(os.Stdout),
	}
	d.envelope(env, path)
	return nil
}
