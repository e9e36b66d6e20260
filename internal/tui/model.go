package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/tradebot/internal/api"
	"github.com/diogo/tradebot/internal/chat"
	"github.com/diogo/tradebot/internal/dataset"
	"github.com/diogo/tradebot/internal/models"
	"github.com/diogo/tradebot/internal/render"
)

// Message types for the TUI
type (
	answerMsg struct {
		req chat.Request
		out api.Outcome
	}
	tradesMsg struct {
		result api.TradesResult
	}
	// scrollTickMsg advances one frame of the scroll animation
	scrollTickMsg struct {
		gen int
	}
	flashClearMsg struct{}
)

type focusArea int

const (
	focusInput focusArea = iota
	focusTrades
)

const (
	tradesPanelHeight = 10
	scrollFrames      = 6
)

// scrollState is shared between the controller hook and the model copies
// bubbletea passes around. The hook only marks the log dirty; the model
// rebuilds the viewport and starts scrolling on the next Update.
type scrollState struct {
	mu    sync.Mutex
	dirty bool
	gen   int
}

func (s *scrollState) mark() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

func (s *scrollState) take() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.dirty
	s.dirty = false
	return d
}

// next starts a new scroll animation, superseding any in flight
func (s *scrollState) next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

func (s *scrollState) current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Options configures the chat model
type Options struct {
	Theme           string
	Markdown        render.Options
	CopyToClipboard bool
	// SmoothScroll animates the jump to the newest message
	SmoothScroll bool
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		Theme:        render.DefaultPaletteName,
		Markdown:     render.DefaultOptions(),
		SmoothScroll: true,
	}
}

// Model represents the TUI state
type Model struct {
	client     api.ServiceInterface
	controller *chat.Controller
	loader     *dataset.Loader
	scroll     *scrollState
	opts       Options

	ctx    context.Context
	cancel context.CancelFunc

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	trades   tradesPanel

	focus focusArea
	ready bool
	flash string

	copyFn func(string) error

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat model. The greeting and the trades fetch are
// issued by Init.
func NewChatModel(client api.ServiceInterface, opts Options) Model {
	UpdateTheme(opts.Theme)

	ta := textarea.New()
	ta.Placeholder = "Ask about your trades..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	// enter submits; alt+enter and ctrl+j insert a newline
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(palette.BotText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(palette.TextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		client:     client,
		controller: chat.NewController(),
		loader:     dataset.NewLoader(),
		scroll:     &scrollState{},
		opts:       opts,
		ctx:        ctx,
		cancel:     cancel,
		textarea:   ta,
		spinner:    s,
		trades:     newTradesPanel(),
		copyFn:     clipboard.WriteAll,
	}
	m.controller.OnChange(m.scroll.mark)
	return m
}

// Init starts the greeting and the dataset fetch independently
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.greet(),
		m.loadTrades(),
	)
}

// greet issues the greeting round trip, at most once
func (m Model) greet() tea.Cmd {
	req, ok := m.controller.Greet()
	if !ok {
		return nil
	}
	return tea.Batch(m.ask(req), m.spinner.Tick)
}

func (m Model) ask(req chat.Request) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		return answerMsg{req: req, out: client.Ask(ctx, req.Payload)}
	}
}

func (m Model) loadTrades() tea.Cmd {
	if !m.loader.Start() {
		return nil
	}
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		return tradesMsg{result: client.ListTrades(ctx)}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.shutdown()
			return m, tea.Quit

		case "tab":
			m.toggleFocus()
			return m, nil

		case "ctrl+y":
			return m, m.copyLastAnswer()

		case "enter":
			if m.focus == focusInput {
				// never forwarded to the textarea
				cmds = append(cmds, m.submit())
				return m.afterUpdate(cmds)
			}
		}

		if m.focus == focusTrades {
			m.trades, cmd = m.trades.update(msg)
			return m, cmd
		}

		if msg.String() == "pgup" || msg.String() == "pgdown" {
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		// Only pass KeyMsg to textarea to prevent escape sequence leaks
		if !m.controller.Pending() {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}

	case answerMsg:
		if m.controller.Resolve(msg.req, msg.out) {
			if m.focus == focusInput {
				cmds = append(cmds, m.textarea.Focus())
			}
			if m.opts.CopyToClipboard && !msg.req.IsGreeting() && msg.out.Kind == api.OutcomeAnswer {
				cmds = append(cmds, m.copyLastAnswer())
			}
		}

	case tradesMsg:
		if m.loader.Finish(msg.result) {
			m.trades.sync(m.loader.Status(), m.loader.Rows())
		}

	case scrollTickMsg:
		cmds = append(cmds, m.scrollStep(msg))

	case flashClearMsg:
		m.flash = ""

	case spinner.TickMsg:
		if m.controller.Pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m.afterUpdate(cmds)
}

// afterUpdate runs the scroll coordinator: any log mutation since the last
// update rebuilds the viewport and scrolls to the newest message.
func (m Model) afterUpdate(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.scroll.take() {
		m.refreshViewport()
		cmds = append(cmds, m.scrollToBottom())
	}
	return m, tea.Batch(cmds...)
}

// submit hands the input to the controller. Blank input and input while a
// request is pending leave everything untouched.
func (m *Model) submit() tea.Cmd {
	req, ok := m.controller.Submit(m.textarea.Value())
	if !ok {
		return nil
	}
	m.textarea.Reset()
	m.textarea.Blur()
	return tea.Batch(m.ask(req), m.spinner.Tick)
}

func (m *Model) scrollToBottom() tea.Cmd {
	gen := m.scroll.next()
	if !m.ready || !m.opts.SmoothScroll {
		m.viewport.GotoBottom()
		return nil
	}
	return scrollTick(gen)
}

func scrollTick(gen int) tea.Cmd {
	return tea.Tick(models.ScrollAnimationInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{gen: gen}
	})
}

// scrollStep moves a fraction of the remaining distance per frame and lands
// exactly on the bottom.
func (m *Model) scrollStep(msg scrollTickMsg) tea.Cmd {
	if msg.gen != m.scroll.current() {
		return nil
	}
	remaining := m.viewport.TotalLineCount() - m.viewport.Height - m.viewport.YOffset
	if remaining <= 0 || m.viewport.AtBottom() {
		m.viewport.GotoBottom()
		return nil
	}
	step := (remaining + scrollFrames - 1) / scrollFrames
	if step < 1 {
		step = 1
	}
	m.viewport.LineDown(step)
	if m.viewport.AtBottom() {
		return nil
	}
	return scrollTick(msg.gen)
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusTrades
		m.textarea.Blur()
		m.trades.focus()
		return
	}
	m.focus = focusInput
	m.trades.blur()
	if !m.controller.Pending() {
		m.textarea.Focus()
	}
}

func (m *Model) copyLastAnswer() tea.Cmd {
	text, ok := m.controller.LastBotText()
	if !ok {
		return nil
	}
	if err := m.copyFn(text); err != nil {
		m.flash = fmt.Sprintf("Copy failed: %v", err)
	} else {
		m.flash = "Copied last answer to clipboard"
	}
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return flashClearMsg{} })
}

// shutdown tears the conversation down; late answers are discarded
func (m *Model) shutdown() {
	m.controller.Close()
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Model) resize() {
	headerHeight := 3
	inputHeight := 5
	statusHeight := 1

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - tradesPanelHeight - 2
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := m.width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 2)
	m.trades.setSize(m.width, tradesPanelHeight)
}

// refreshViewport renders the log into the viewport
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	st := m.controller.State()
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var content strings.Builder
	for i, msg := range st.Messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, bubbleWidth))
		content.WriteString("\n")
	}
	if st.Pending {
		if len(st.Messages) > 0 {
			content.WriteString("\n")
		}
		content.WriteString(botLabelStyle.Render("✦ Bot") + "\n")
		content.WriteString(botBubbleStyle.Render(typingStyle.Render("...")))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m Model) renderMessage(msg models.Message, width int) string {
	if msg.IsUser() {
		label := userLabelStyle.Render("You ⬤")
		bubble := userBubbleStyle.MaxWidth(width).Render(msg.Text)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(m.viewport.Width-2, lipgloss.Right, block)
	}

	label := botLabelStyle.Render("✦ Bot")
	rendered := render.Answer(msg.Text, m.opts.Markdown.WithWidth(width-4))
	return label + "\n" + botBubbleStyle.Width(width).Render(rendered)
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ Trade Assistant"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.client.BaseURL()),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View()))

	var input string
	if m.controller.Pending() {
		input = fmt.Sprintf("%s %s", m.spinner.View(), loadingStyle.Render("Waiting for the assistant..."))
	} else {
		input = lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(input))

	sections = append(sections, m.trades.view())
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	if m.flash != "" {
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(flashStyle.Render(m.flash))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"Tab", "Trades"},
		{"Ctrl+Y", "Copy"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// Controller exposes the conversation for callers that need the final log
func (m Model) Controller() *chat.Controller {
	return m.controller
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(client api.ServiceInterface, opts Options) error {
	m := NewChatModel(client, opts)
	defer m.shutdown()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
