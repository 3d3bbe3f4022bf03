package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/fudge"
	"github.com/wippyai/fudge/wire"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "fudgedump.toml", "color = \"never\"\nmax_depth = 3\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, 1, cfg.TextWidth)
	assert.Equal(t, 16, cfg.Preview)

	bad := writeFile(t, "bad.toml", "text_width = 3\n")
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "text_width")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "config load failed")

	broken := writeFile(t, "broken.toml", "color = \n")
	_, err = LoadConfig(broken)
	assert.ErrorContains(t, err, "config parse failed")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"utf-16", func(c *Config) { c.TextWidth = 2 }, true},
		{"bad color", func(c *Config) { c.Color = "sometimes" }, false},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, false},
		{"negative preview", func(c *Config) { c.Preview = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

const description = `
taxonomy = 3
schema_version = 1

[[field]]
name = "flag"
value = true

[[field]]
name = "ratio"
type = "float"
value = 1.25

[[field]]
name = "ids"
type = "int[]"
value = [1, 2, 3]

[[field]]
name = "day"
value = 2024-02-29

[[field]]
name = "at"
value = 07:32:00

[[field]]
name = "hash"
type = "byte[4]"
value = [1, 2, 3, 4]

[[field]]
name = "child"
[[field.field]]
ordinal = 1
value = "nested"

[[field]]
name = "empty"
type = "message"
`

func buildFromText(t *testing.T, text string) (*fudge.Envelope, error) {
	t.Helper()
	spec, err := parseBuildSpec([]byte(text))
	require.NoError(t, err)
	return buildEnvelope(spec, 1)
}

func TestBuildEnvelope(t *testing.T) {
	env, err := buildFromText(t, description)
	require.NoError(t, err)
	assert.Equal(t, int16(3), env.Taxonomy())
	assert.Equal(t, byte(1), env.SchemaVersion())

	data, err := env.Encode()
	require.NoError(t, err)
	back, err := fudge.Decode(data)
	require.NoError(t, err)
	m := back.Message()
	require.Equal(t, 8, m.Len())

	expect := []struct {
		name  string
		typ   wire.Type
		value any
	}{
		{"flag", wire.TypeBoolean, true},
		{"ratio", wire.TypeFloat, float32(1.25)},
		{"ids", wire.TypeIntArray, []int32{1, 2, 3}},
		{"day", wire.TypeDate, wire.Date{Year: 2024, Month: 2, Day: 29}},
		{"at", wire.TypeTime, wire.Time{Precision: wire.PrecisionSecond, Hour: 7, Minute: 32}},
		{"hash", wire.TypeByteArray4, []byte{1, 2, 3, 4}},
	}
	for _, e := range expect {
		f, err := m.FieldByName(e.name)
		require.NoError(t, err, e.name)
		assert.Equal(t, e.typ, f.Type(), e.name)
		assert.Equal(t, e.value, f.Value(), e.name)
	}

	child, err := m.FieldByName("child")
	require.NoError(t, err)
	sub, err := child.Message()
	require.NoError(t, err)
	nested, err := sub.FieldByOrdinal(1)
	require.NoError(t, err)
	assert.Equal(t, "nested", nested.Value())

	empty, err := m.FieldByName("empty")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.ElementCount())
}

func TestBuildEnvelopeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"unknown type", "[[field]]\ntype = \"nope\"\nvalue = 1\n", `unknown type "nope"`},
		{"ordinal range", "[[field]]\nordinal = 70000\nvalue = 1\n", "ordinal 70000"},
		{"untyped array", "[[field]]\nvalue = [1, 2]\n", "no_inferred_type"},
		{"overflow", "[[field]]\ntype = \"byte\"\nvalue = 300\n", "overflow"},
		{"message with value", "[[field]]\ntype = \"message\"\nvalue = 1\n", "nested fields"},
		{"nested path", "[[field]]\nname = \"a\"\n[[field.field]]\ntype = \"short\"\nvalue = 1e9\n", "field[0].field[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildFromText(t, tt.text)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func sampleEnvelope(t *testing.T) *fudge.Envelope {
	t.Helper()
	sub := fudge.NewMessage()
	require.NoError(t, sub.Add("y", fudge.WithName("x")))

	m := fudge.NewMessage()
	require.NoError(t, m.Add(5, fudge.WithName("a"), fudge.WithOrdinal(1)))
	require.NoError(t, m.AddMessage(sub, fudge.WithName("sub")))
	require.NoError(t, m.AddByteArray(make([]byte, 20), fudge.WithName("raw"), fudge.WithOrdinal(7)))

	env, err := fudge.NewEnvelope(m, fudge.WithTaxonomy(3), fudge.WithSchemaVersion(1))
	require.NoError(t, err)
	return env
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Preview = 2
	d := &dumper{out: &buf, cfg: cfg}
	d.envelope(sampleEnvelope(t), "sample.fudge")

	want := []string{
		"Fudge envelope sample.fudge",
		"directives=0 schema=1 taxonomy=3 fields=3",
		"",
		"[0] a #1 long = 5",
		"[1] sub message = {1 fields}",
		`  [0] x string = "y"`,
		"[2] raw #7 byte[] = <20 bytes> 0000…",
		"",
	}
	assert.Equal(t, strings.Join(want, "\n"), buf.String())
}

func TestDumpDepthLimit(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.MaxDepth = 1
	d := &dumper{out: &buf, cfg: cfg}
	d.message(sampleEnvelope(t).Message(), 0)
	assert.Contains(t, buf.String(), "[1] sub message = {1 fields}\n  ...\n")
	assert.NotContains(t, buf.String(), `"y"`)
}

func TestDumpTruncatesToWidth(t *testing.T) {
	var buf bytes.Buffer
	d := &dumper{out: &buf, cfg: DefaultConfig(), width: 10}
	d.line("0123456789abcdef")
	assert.Equal(t, "012345678…\n", buf.String())
	assert.Equal(t, "<3 bytes> 0102…", hexPreview([]byte{1, 2, 3}, 2))
}

func key(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestBrowseNavigation(t *testing.T) {
	m := newBrowseModel(sampleEnvelope(t), "sample.fudge", DefaultConfig())
	press := func(keys ...string) {
		for _, k := range keys {
			m.Update(key(k))
		}
	}

	press("down", "enter")
	require.Len(t, m.stack, 2)
	assert.Equal(t, "sub", m.top().label)
	assert.Contains(t, m.View(), "root › sub")

	press("esc")
	require.Len(t, m.stack, 1)
	assert.Equal(t, 1, m.top().selected)

	press("up", "up")
	assert.Equal(t, 0, m.top().selected)
	press("enter")
	assert.Contains(t, m.status, "is not a message")
	assert.Len(t, m.stack, 1)

	press("down", "down", "down")
	assert.Equal(t, 2, m.top().selected)
}

func TestBrowseLookup(t *testing.T) {
	m := newBrowseModel(sampleEnvelope(t), "sample.fudge", DefaultConfig())

	m.Update(key("/"))
	assert.Equal(t, stateLookup, m.state)
	m.Update(key("sub"))
	m.Update(key("enter"))
	assert.Equal(t, stateFields, m.state)
	assert.Equal(t, 1, m.top().selected)

	m.Update(key("/"))
	m.Update(key("#7"))
	m.Update(key("enter"))
	assert.Equal(t, 2, m.top().selected)
	assert.Empty(t, m.status)

	m.Update(key("/"))
	m.Update(key("missing"))
	m.Update(key("enter"))
	assert.Contains(t, m.status, "not_found")
	assert.Equal(t, 2, m.top().selected)

	m.Update(key("/"))
	m.Update(key("#x"))
	m.Update(key("enter"))
	assert.Contains(t, m.status, "bad ordinal")

	m.Update(key("/"))
	m.Update(key("esc"))
	assert.Equal(t, stateFields, m.state)
}

func TestListTypes(t *testing.T) {
	var buf bytes.Buffer
	listTypes(&buf, painter{})
	out := buf.String()
	assert.Equal(t, len(wire.Types()), strings.Count(out, "\n"))
	assert.Contains(t, out, "  5  long       8\n")
	assert.Contains(t, out, "  8  int[]      variable (4 per element)\n")
	assert.Contains(t, out, " 25  byte[512]  512\n")
}

func TestAppBuildCommand(t *testing.T) {
	spec := writeFile(t, "message.toml", description)
	out := filepath.Join(t.TempDir(), "message.fudge")

	require.NoError(t, newApp().Run([]string{"fudgedump", "build", "-o", out, spec}))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	env, err := fudge.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 8, env.Message().Len())

	assert.Error(t, newApp().Run([]string{"fudgedump", "build", spec}))
	assert.Error(t, newApp().Run([]string{"fudgedump", "dump"}))
}

func TestAppCommands(t *testing.T) {
	t.Cleanup(func() { fudge.SetLogger(nil) })

	dir := t.TempDir()
	spec := writeFile(t, "message.toml", description)
	settings := writeFile(t, "fudgedump.toml", "color = \"never\"\n")
	encoded := filepath.Join(dir, "message.fudge")
	missing := filepath.Join(dir, "missing.fudge")

	tests := []struct {
		name string
		args []string
		ok   bool
	}{
		{"build", []string{"build", "-o", encoded, spec}, true},
		{"dump", []string{"dump", encoded}, true},
		{"types", []string{"types"}, true},
		{"config", []string{"--config", settings, "types"}, true},
		{"verbose", []string{"--verbose", "dump", encoded}, true},
		{"version", []string{"-v"}, true},
		{"dump missing file", []string{"dump", missing}, false},
		{"browse missing file", []string{"browse", missing}, false},
		{"browse without file", []string{"browse"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				err = newApp().Run(append([]string{"fudgedump"}, tt.args...))
			})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
