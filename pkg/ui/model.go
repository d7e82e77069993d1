package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/menuwork/pkg/anchor"
	"github.com/vanderheijden86/menuwork/pkg/config"
	"github.com/vanderheijden86/menuwork/pkg/menu"
	"github.com/vanderheijden86/menuwork/pkg/model"
)

// StateStore persists checked state and activation history.
// *store.Store satisfies it.
type StateStore interface {
	SaveChecked(ctx context.Context, menu, path string, checked bool) error
	LoadChecked(ctx context.Context, menu string) (map[string]bool, error)
	RecordActivation(ctx context.Context, menu, path string, at time.Time) error
}

// Options configures a Model. Every field may be left zero.
type Options struct {
	Config    config.Config
	Store     StateStore
	Runner    *ActionRunner
	Renderer  *lipgloss.Renderer
	Clipboard func(string) error
	Now       func() time.Time
}

// turnMsg lets the anchor queue settle on the next event turn.
type turnMsg struct{}

type clipboardMsg struct {
	path string
	err  error
}

type storeErrMsg struct{ err error }

// eventSink collects selection notifications raised during one Update.
type eventSink struct {
	muted   bool
	pending []*menu.Item
}

func (s *eventSink) record(n menu.SelectionChanged) {
	if !s.muted {
		s.pending = append(s.pending, n.Source)
	}
}

func (s *eventSink) drain() []*menu.Item {
	out := s.pending
	s.pending = nil
	return out
}

// pointerState tracks the chain of items under the mouse, outermost first.
type pointerState struct {
	chain []*menu.Item
}

// Model is the main Bubble Tea model for a cascading menu.
type Model struct {
	spec *model.MenuSpec

	doc    *menu.Document
	root   *menu.Menu
	region *anchor.Region
	queue  *anchor.Queue
	layout *layoutState
	events *eventSink
	mouse  *pointerState

	theme   Theme
	keys    KeyMap
	help    help.Model
	helpMD  *helpRenderer
	outline OutlineModel
	cfg     config.Config

	store  StateStore
	runner *ActionRunner
	copyFn func(string) error
	now    func() time.Time

	width       int
	height      int
	ready       bool
	showHelp    bool
	showOutline bool
	status      string
	statusErr   bool
}

// NewModel mounts the menu built from spec.
func NewModel(spec *model.MenuSpec, opts Options) (Model, error) {
	cfg := opts.Config
	// zero Options means stock settings
	if cfg.Theme == "" && cfg.Glyphs == "" && cfg.Shell == "" {
		cfg = config.DefaultConfig()
	}
	keys, err := DefaultKeyMap().WithOverrides(cfg.Keys)
	if err != nil {
		return Model{}, err
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	theme := ThemeFor(r, cfg.Theme, cfg.Glyphs)

	dirName := spec.Direction
	if cfg.Direction != "" {
		dirName = cfg.Direction
	}
	dir := menu.ParseDirection(dirName)

	m := Model{
		spec:    spec,
		doc:     menu.NewDocument(),
		root:    model.Build(spec),
		queue:   &anchor.Queue{},
		layout:  newLayoutState(),
		events:  &eventSink{},
		mouse:   &pointerState{},
		theme:   theme,
		keys:    keys,
		help:    help.New(),
		helpMD:  &helpRenderer{},
		outline: NewOutlineModel(theme),
		cfg:     cfg,
		store:   opts.Store,
		runner:  opts.Runner,
		copyFn:  opts.Clipboard,
		now:     opts.Now,
	}
	if m.copyFn == nil {
		m.copyFn = clipboard.WriteAll
	}
	if m.now == nil {
		m.now = time.Now
	}

	root, layout := m.root, m.layout
	maxLabel, showStops := cfg.Layout.MaxLabelWidth, cfg.Layout.ShowTabStops
	m.region = anchor.NewRegion(
		func(el menu.Element) (anchor.Rect, bool) { return layout.rect(root, el) },
		func(a menu.Element) (int, int) {
			it, ok := a.(*menu.Item)
			if !ok || it.Submenu() == nil {
				return 0, 0
			}
			return panelSize(it.Submenu(), theme, maxLabel, showStops)
		},
		m.queue.Schedule,
	)
	m.region.SetDirection(dir)
	m.doc.SetPositioner(m.region)
	m.doc.SetDirection(dir)
	m.doc.Mount(m.root)
	m.root.OnSelectionChanged(m.events.record)

	m.restoreChecked()
	m.relayout()
	return m, nil
}

// Document returns the focus owner, for tests and robot output.
func (m Model) Document() *menu.Document { return m.doc }

// Root returns the mounted top-level menu.
func (m Model) Root() *menu.Menu { return m.root }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.turn()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case turnMsg:
		m.queue.Drain()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.layout.viewport = anchor.Rect{X: 0, Y: 1, W: msg.Width, H: max(msg.Height-3, 1)}
		m.outline.SetSize(msg.Width, max(msg.Height-3, 1))
		m.relayout()
		m.region.Reposition(m.root)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		m.handleMouse(msg)

	case SpecReadyMsg:
		m.reload(msg.Spec)

	case SpecErrorMsg:
		m.setError(fmt.Sprintf("reload failed: %v", msg.Err))

	case ActionResultMsg:
		if msg.Success {
			m.setStatus(fmt.Sprintf("%s: %s", msg.Path, firstLine(msg.Output)))
		} else {
			m.setError(fmt.Sprintf("%s: %v", msg.Path, msg.Error))
		}

	case clipboardMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("copy failed: %v", msg.err))
		} else {
			m.setStatus("copied " + msg.path)
		}

	case storeErrMsg:
		m.setError(fmt.Sprintf("state not saved: %v", msg.err))
	}

	cmds = append(cmds, m.flushEvents()...)
	m.relayout()
	if m.showOutline {
		m.outline.Build(m.root)
		m.outline.Reveal(m.doc.Active())
	}
	cmds = append(cmds, m.turn())
	return m, tea.Batch(cmds...)
}

// turn schedules a drain when the anchor queue has work.
func (m Model) turn() tea.Cmd {
	if m.queue.Len() == 0 {
		return nil
	}
	return func() tea.Msg { return turnMsg{} }
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Blur) {
			m.showHelp = false
			return nil
		}
		if key.Matches(msg, m.keys.Quit) {
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, m.keys.Outline):
		m.showOutline = !m.showOutline
		return nil
	case key.Matches(msg, m.keys.Tab):
		if m.doc.Active() != nil {
			m.doc.Blur()
		} else if !m.doc.TabInto() {
			m.setError("nothing to focus")
		}
		return nil
	case key.Matches(msg, m.keys.Blur):
		m.doc.Blur()
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyActive()
	}

	k := m.keys.MenuKey(msg.String())
	if k == menu.KeyNone {
		return nil
	}
	if m.doc.Active() == nil {
		// arrows enter the menu like Tab does
		if k == menu.KeyDown || k == menu.KeyUp || k == menu.KeyHome || k == menu.KeyEnd {
			m.doc.TabInto()
		}
		return nil
	}
	m.doc.DispatchKey(k)
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.cfg.Layout.Mouse || m.showHelp || m.showOutline {
		return
	}
	el := m.layout.hit(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.hover(el)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		it, ok := el.(*menu.Item)
		if !ok {
			if el == nil {
				m.doc.Blur()
			}
			return
		}
		if menu.IsFocusable(it) {
			it.Focus()
		}
		it.Click()
	}
}

// hover moves the pointer chain to el. Items whose open submenu holds el
// stay entered; the rest get a pointer leave, innermost first.
func (m *Model) hover(el menu.Element) {
	p := m.mouse
	for len(p.chain) > 0 {
		last := p.chain[len(p.chain)-1]
		if menu.Element(last) == el || (last.Expanded() && last.Submenu().Contains(el)) {
			break
		}
		p.chain = p.chain[:len(p.chain)-1]
		last.PointerLeave()
	}
	it, ok := el.(*menu.Item)
	if !ok {
		return
	}
	if n := len(p.chain); n > 0 && p.chain[n-1] == it {
		return
	}
	p.chain = append(p.chain, it)
	it.PointerEnter()
}

func (m *Model) copyActive() tea.Cmd {
	it, ok := m.doc.Active().(*menu.Item)
	if !ok {
		m.setError("no item focused")
		return nil
	}
	path, copyFn := it.Path(), m.copyFn
	return func() tea.Msg {
		return clipboardMsg{path: path, err: copyFn(path)}
	}
}

// flushEvents turns the selections raised this turn into side effects:
// checked state is saved, plain items are recorded and run their command.
func (m *Model) flushEvents() []tea.Cmd {
	var cmds []tea.Cmd
	for _, it := range m.events.drain() {
		path := it.Path()
		if it.Role().IsCheckable() {
			cmds = append(cmds, m.saveChecked(path, it.Checked()))
			continue
		}
		cmds = append(cmds, m.recordActivation(path))
		spec, ok := model.SpecOf(it)
		if ok && spec.Exec != "" && m.runner != nil {
			m.setStatus("running " + path)
			cmds = append(cmds, m.runner.Run(path, spec.Exec))
		} else {
			m.setStatus("selected " + path)
		}
		// a command closes the open cascade
		m.root.CollapseExpandedItem()
	}
	return cmds
}

func (m *Model) saveChecked(path string, checked bool) tea.Cmd {
	if m.store == nil {
		return nil
	}
	st, name := m.store, m.spec.Name
	return func() tea.Msg {
		if err := st.SaveChecked(context.Background(), name, path, checked); err != nil {
			log.Printf("warning: failed to save checked state for %s: %v", path, err)
			return storeErrMsg{err}
		}
		return nil
	}
}

func (m *Model) recordActivation(path string) tea.Cmd {
	if m.store == nil {
		return nil
	}
	st, name, at := m.store, m.spec.Name, m.now()
	return func() tea.Msg {
		if err := st.RecordActivation(context.Background(), name, path, at); err != nil {
			log.Printf("warning: failed to record activation of %s: %v", path, err)
			return storeErrMsg{err}
		}
		return nil
	}
}

// restoreChecked applies persisted checked flags without saving them again.
func (m *Model) restoreChecked() {
	if m.store == nil {
		return
	}
	states, err := m.store.LoadChecked(context.Background(), m.spec.Name)
	if err != nil {
		log.Printf("warning: failed to load checked state: %v", err)
		return
	}
	m.events.muted = true
	defer func() { m.events.muted = false }()
	m.root.Walk(func(mn *menu.Menu) {
		for _, it := range mn.Items() {
			if v, ok := states[it.Path()]; ok && it.Role().IsCheckable() {
				it.SetChecked(v)
			}
		}
	})
}

// reload swaps in a new definition under the same root, keeping focus on
// the item with the same path when it still exists at the top level.
func (m *Model) reload(spec *model.MenuSpec) {
	var activePath string
	if it, ok := m.doc.Active().(*menu.Item); ok {
		activePath = it.Path()
	}
	var old []*menu.Item
	m.root.Walk(func(mn *menu.Menu) { old = append(old, mn.Items()...) })

	m.mouse.chain = nil
	m.spec = spec
	m.root.SetChildren(model.BuildChildren(spec, spec.Items)...)
	for _, it := range old {
		m.region.Forget(it)
	}
	m.restoreChecked()

	if activePath != "" {
		for _, it := range m.root.Items() {
			if it.Path() == activePath && menu.IsFocusable(it) {
				it.Focus()
				break
			}
		}
	}
	m.setStatus("reloaded " + spec.Name)
}

// relayout places the root panel at the viewport origin and every settled
// submenu at its region placement.
func (m *Model) relayout() {
	l := m.layout
	l.panels = l.panels[:0]
	clear(l.rows)
	w, h := panelSize(m.root, m.theme, m.cfg.Layout.MaxLabelWidth, m.cfg.Layout.ShowTabStops)
	m.place(m.root, anchor.Rect{X: l.viewport.X, Y: l.viewport.Y, W: w, H: h})
}

func (m *Model) place(mn *menu.Menu, r anchor.Rect) {
	l := m.layout
	l.panels = append(l.panels, panel{menu: mn, rect: r})
	for i, el := range mn.Children() {
		l.rows[el] = anchor.Rect{X: r.X, Y: r.Y + 1 + i, W: r.W, H: 1}
	}
	it := mn.ExpandedChild()
	if it == nil || it.Submenu() == nil {
		return
	}
	p, ok := m.region.Placement(it)
	if !ok {
		// still settling
		return
	}
	m.place(it.Submenu(), p.Rect)
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	t := m.theme
	r := t.Renderer
	bodyHeight := max(m.height-3, 1)

	if m.showHelp {
		style := "dark"
		if m.cfg.Theme == "light" {
			style = "light"
		}
		return RenderHelp(m.helpMD, HelpMarkdown(m.keys, m.doc.Direction()), t, style, m.width, m.height)
	}

	title := m.spec.Title
	if title == "" {
		title = m.spec.Name
	}
	header := r.NewStyle().Foreground(t.Primary).Bold(true).Render(title)
	if m.doc.Direction() == menu.RTL {
		header += r.NewStyle().Foreground(t.Muted).Render("  rtl")
	}

	var body string
	if m.showOutline {
		body = r.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(m.outline.View(m.doc.Active()))
	} else {
		c := newCanvas(m.width, bodyHeight)
		vp := m.layout.viewport
		for _, p := range m.layout.panels {
			block := renderPanel(p.menu, m.doc.Active(), t, m.cfg.Layout.MaxLabelWidth, m.cfg.Layout.ShowTabStops)
			c.paint(p.rect.X-vp.X, p.rect.Y-vp.Y, block)
		}
		body = c.String()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusLine(), m.help.View(m.keys))
}

func (m Model) statusLine() string {
	t := m.theme
	r := t.Renderer
	if m.status != "" {
		color := t.Secondary
		if m.statusErr {
			color = t.Danger
		}
		return r.NewStyle().Foreground(color).Render(m.status)
	}
	if it, ok := m.doc.Active().(*menu.Item); ok {
		return r.NewStyle().Foreground(t.Subtext).Render(fmt.Sprintf("%s  %s", it.Path(), it.Role()))
	}
	return r.NewStyle().Foreground(t.Muted).Render("tab to focus the menu")
}
