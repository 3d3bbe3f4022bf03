package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/fudge"
	"github.com/wippyai/fudge/wire"
)

type browseState int

const (
	stateFields browseState = iota
	stateLookup
)

// frame is one level of the sub-message path.
type frame struct {
	msg      *fudge.Message
	label    string
	selected int
}

type browseModel struct {
	env      *fudge.Envelope
	filename string
	status   string
	stack    []frame
	input    textinput.Model
	cfg      Config
	state    browseState
}

func newBrowseModel(env *fudge.Envelope, filename string, cfg Config) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "name or #ordinal"
	ti.Prompt = "/"
	ti.Width = 40
	return &browseModel{
		env:      env,
		filename: filename,
		stack:    []frame{{msg: env.Message(), label: "root"}},
		input:    ti,
		cfg:      cfg,
		state:    stateFields,
	}
}

func (m *browseModel) top() *frame {
	return &m.stack[len(m.stack)-1]
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateLookup {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.lookup(m.input.Value())
			m.closeLookup()
			return m, nil
		case "esc":
			m.closeLookup()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	top := m.top()
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if top.selected > 0 {
			top.selected--
		}

	case "down", "j":
		if top.selected < top.msg.Len()-1 {
			top.selected++
		}

	case "enter", "right", "l":
		m.enter()

	case "esc", "backspace", "left", "h":
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		m.status = ""

	case "/":
		m.state = stateLookup
		m.input.SetValue("")
		m.input.Focus()
		m.status = ""
	}
	return m, nil
}

func (m *browseModel) closeLookup() {
	m.input.Blur()
	m.state = stateFields
}

// enter descends into the selected field when it is a sub-message.
func (m *browseModel) enter() {
	top := m.top()
	f, err := top.msg.FieldAt(top.selected)
	if err != nil {
		m.status = err.Error()
		return
	}
	if !isMessage(f) {
		m.status = fmt.Sprintf("%s is not a message", f.Type())
		return
	}
	child, err := f.Message()
	if err != nil {
		m.status = err.Error()
		return
	}
	label := fmt.Sprintf("[%d]", f.Index())
	if name, ok := f.Name(); ok {
		label = name
	}
	m.stack = append(m.stack, frame{msg: child, label: label})
	m.status = ""
}

// lookup selects the first field matching query: "#n" looks up ordinal n,
// anything else a name.
func (m *browseModel) lookup(query string) {
	top := m.top()
	var (
		f   *fudge.Field
		err error
	)
	if rest, ok := strings.CutPrefix(query, "#"); ok {
		n, perr := strconv.ParseUint(rest, 10, 16)
		if perr != nil {
			m.status = fmt.Sprintf("bad ordinal %q", rest)
			return
		}
		f, err = top.msg.Get(int(n))
	} else {
		f, err = top.msg.Get(query)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	top.selected = f.Index()
	m.status = ""
}

func (m *browseModel) path() string {
	labels := make([]string, len(m.stack))
	for i, fr := range m.stack {
		labels[i] = fr.label
	}
	return strings.Join(labels, " › ")
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Fudge Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")
	fmt.Fprintf(&b, "taxonomy %d • schema %d • %s\n\n", m.env.Taxonomy(), m.env.SchemaVersion(), m.path())

	top := m.top()
	d := &dumper{cfg: m.cfg, p: painter{styled: true}}
	if top.msg.Len() == 0 {
		b.WriteString(helpStyle.Render("(no fields)"))
		b.WriteString("\n")
	}
	for i, f := range top.msg.Fields() {
		if i == top.selected {
			b.WriteString(selectedStyle.Render("> " + d.plain(f)))
		} else {
			b.WriteString("  " + d.describe(f))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.state == stateLookup:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter find • esc cancel"))
	case m.status != "":
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
		fallthrough
	default:
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • esc back • / find • q quit"))
	}
	return b.String()
}

// plain describes f without inner styles so the selection style applies to
// the whole line.
func (d *dumper) plain(f *fudge.Field) string {
	saved := d.p
	d.p = painter{}
	defer func() { d.p = saved }()
	return d.describe(f)
}

func isMessage(f *fudge.Field) bool {
	return f.Type() == wire.TypeMessage
}

func runBrowse(cfg Config, path string) error {
	env, err := readEnvelope(path)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newBrowseModel(env, path, cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
