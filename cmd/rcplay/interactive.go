package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/rc-runtime/arena"
	"github.com/wippyai/rc-runtime/cycle"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	leakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const logWindow = 12

type weakEntry struct {
	block  *arena.WeakBlock
	target arena.Ref
}

type playModel struct {
	a      *arena.Arena
	names  map[string]arena.Ref
	weaks  map[string]weakEntry
	nodes  map[arena.Ref]*demoNode
	input  textinput.Model
	log    []string
	mode   arena.Mode
	closed bool
}

func newPlayModel(mode arena.Mode) *playModel {
	ti := textinput.New()
	ti.Placeholder = "alloc kraken"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	m := &playModel{
		names: make(map[string]arena.Ref),
		weaks: make(map[string]weakEntry),
		nodes: make(map[arena.Ref]*demoNode),
		input: ti,
		mode:  mode,
	}
	m.a = arena.New(arena.WithMode(mode), arena.WithObserver(m))
	m.logf(helpStyle.Render("type 'help' for commands"))
	return m
}

// OnObjectEvent feeds arena lifecycle events into the log. All commands
// run synchronously inside Update, so no locking is needed here.
func (m *playModel) OnObjectEvent(e arena.Event) {
	label := e.Ref.String()
	if n, ok := m.nodes[e.Ref]; ok {
		label = n.name
	}
	switch e.Type {
	case arena.EventAllocated, arena.EventRetained, arena.EventReleased:
		m.logf(eventStyle.Render(fmt.Sprintf("%s %s strong=%d", e.Type, label, e.Strong)))
	case arena.EventDestroyed:
		m.logf(eventStyle.Render(fmt.Sprintf("%s %s", e.Type, label)))
		delete(m.nodes, e.Ref)
	default:
		m.logf(eventStyle.Render(fmt.Sprintf("%s %s", e.Type, label)))
	}
}

func (m *playModel) logf(line string) {
	m.log = append(m.log, line)
	if len(m.log) > logWindow {
		m.log = m.log[len(m.log)-logWindow:]
	}
}

func (m *playModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.closed = true
			m.a.Close()
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "q" {
				m.closed = true
				m.a.Close()
				return m, tea.Quit
			}
			m.execute(line)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *playModel) execute(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	fail := func(format string, a ...any) {
		m.logf(errorStyle.Render(fmt.Sprintf(format, a...)))
	}

	switch cmd {
	case "help":
		m.logf("alloc <n> | clone <n> <as> | release <n> | link <a> <b>")
		m.logf("weak <n> <as> | drop <w> | resolve <w> <as> | leaks | stats")

	case "alloc":
		if len(args) != 1 {
			fail("usage: alloc <name>")
			return
		}
		name := args[0]
		if _, exists := m.names[name]; exists {
			fail("%s already names a handle", name)
			return
		}
		n := &demoNode{a: m.a, name: name}
		ref := m.a.Allocate(n)
		m.names[name] = ref
		m.nodes[ref] = n

	case "clone":
		if len(args) != 2 {
			fail("usage: clone <name> <as>")
			return
		}
		ref, ok := m.names[args[0]]
		if !ok {
			fail("unknown handle %s", args[0])
			return
		}
		if _, exists := m.names[args[1]]; exists {
			fail("%s already names a handle", args[1])
			return
		}
		if err := m.a.Retain(ref); err != nil {
			fail("%v", err)
			return
		}
		m.names[args[1]] = ref

	case "release":
		if len(args) != 1 {
			fail("usage: release <name>")
			return
		}
		ref, ok := m.names[args[0]]
		if !ok {
			fail("unknown handle %s", args[0])
			return
		}
		delete(m.names, args[0])
		if err := m.a.Release(ref); err != nil {
			fail("%v", err)
		}

	case "link":
		if len(args) != 2 {
			fail("usage: link <from> <to>")
			return
		}
		from, ok := m.names[args[0]]
		if !ok {
			fail("unknown handle %s", args[0])
			return
		}
		to, ok := m.names[args[1]]
		if !ok {
			fail("unknown handle %s", args[1])
			return
		}
		if err := m.a.Retain(to); err != nil {
			fail("%v", err)
			return
		}
		m.nodes[from].edges = append(m.nodes[from].edges, to)

	case "weak":
		if len(args) != 2 {
			fail("usage: weak <name> <as>")
			return
		}
		ref, ok := m.names[args[0]]
		if !ok {
			fail("unknown handle %s", args[0])
			return
		}
		block, err := m.a.Weak(ref)
		if err != nil {
			fail("%v", err)
			return
		}
		block.Retain()
		m.weaks[args[1]] = weakEntry{block: block, target: ref}

	case "drop":
		if len(args) != 1 {
			fail("usage: drop <weak>")
			return
		}
		entry, ok := m.weaks[args[0]]
		if !ok {
			fail("unknown weak handle %s", args[0])
			return
		}
		delete(m.weaks, args[0])
		entry.block.Release()

	case "resolve":
		if len(args) != 2 {
			fail("usage: resolve <weak> <as>")
			return
		}
		entry, ok := m.weaks[args[0]]
		if !ok {
			fail("unknown weak handle %s", args[0])
			return
		}
		if _, exists := m.names[args[1]]; exists {
			fail("%s already names a handle", args[1])
			return
		}
		ref, ok := entry.block.Resolve()
		if !ok {
			m.logf(leakStyle.Render(fmt.Sprintf("%s: absent", args[0])))
			return
		}
		m.names[args[1]] = ref

	case "leaks":
		roots := make([]arena.Ref, 0, len(m.names))
		for _, ref := range m.names {
			roots = append(roots, ref)
		}
		report := cycle.Analyze(m.a, roots)
		if len(report.Leaked) == 0 {
			m.logf(liveStyle.Render(fmt.Sprintf("no leaks (%d live, %d reachable)", report.Live, report.Reachable)))
			return
		}
		labels := make([]string, 0, len(report.Leaked))
		for _, ref := range report.Leaked {
			labels = append(labels, m.label(ref))
		}
		m.logf(leakStyle.Render(fmt.Sprintf("leaked: %s", strings.Join(labels, ", "))))

	case "stats":
		s := m.a.Stats()
		m.logf(fmt.Sprintf("allocated=%d destroyed=%d live=%d mode=%s", s.Allocated, s.Destroyed, s.Live, m.mode))

	default:
		fail("unknown command %q (try help)", cmd)
	}
}

func (m *playModel) label(ref arena.Ref) string {
	if n, ok := m.nodes[ref]; ok {
		return n.name
	}
	return ref.String()
}

func (m *playModel) View() string {
	if m.closed {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("rcplay"))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render("mode: " + m.mode.String()))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-5s %-12s %-7s %-6s %s", "slot", "gen", "object", "strong", "weak", "edges")))
	b.WriteString("\n")

	type row struct {
		ref arena.Ref
		n   *demoNode
	}
	var rows []row
	m.a.Each(func(ref arena.Ref, v any) bool {
		rows = append(rows, row{ref: ref, n: v.(*demoNode)})
		return true
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].ref.Slot < rows[j].ref.Slot })

	for _, r := range rows {
		edges := make([]string, 0, len(r.n.edges))
		for _, e := range r.n.edges {
			edges = append(edges, m.label(e))
		}
		line := fmt.Sprintf("%-6d %-5d %-12s %-7d %-6d %s",
			r.ref.Slot, r.ref.Gen, r.n.name,
			m.a.StrongCount(r.ref), m.weakCount(r.ref),
			strings.Join(edges, ","))
		b.WriteString(liveStyle.Render(line))
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(helpStyle.Render("(no live objects)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range m.log {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run • help commands • quit or ctrl+c to exit"))

	return b.String()
}

func (m *playModel) weakCount(ref arena.Ref) int64 {
	var total int64
	for _, entry := range m.weaks {
		if entry.target == ref {
			total++
		}
	}
	return total
}

func runInteractive(mode arena.Mode) error {
	p := tea.NewProgram(newPlayModel(mode), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
