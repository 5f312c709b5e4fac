package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbarreto/decklens"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the decklens TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	run     RunFunc
	session *decklens.Session
	mode    decklens.AnalysisMode
	theme   decklens.Theme
	styles  Styles

	blocks     []MessageBlock
	blockFocus int // index of focused collapsible block (-1 = none)

	// turn folds the current stream into the canonical reducer state; the
	// live blocks below render snapshots of it. They restart on each start
	// event.
	turn   decklens.Progress
	steps  *StepsBlock
	code   *CodeBlock
	answer *AnswerBlock

	running bool
	cancel  context.CancelFunc
	eventCh chan decklens.Event
	doneCh  chan error
	err     error
	ready   bool
}

// New creates a new TUI Model with the given run function, session, and theme.
func New(run RunFunc, session *decklens.Session, theme decklens.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Pergunte sobre o deck..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:      ti,
		run:        run,
		session:    session,
		mode:       decklens.ModeSingle,
		theme:      theme,
		styles:     NewStyles(theme),
		blockFocus: -1,
		turn:       decklens.NewProgress(),
	}
}

// Running returns whether a query turn is currently streaming.
func (m Model) Running() bool { return m.running }

// Err returns the last transport error, if any.
func (m Model) Err() error { return m.err }

// Mode returns the analysis mode the next query will use.
func (m Model) Mode() decklens.AnalysisMode { return m.mode }

// SetMode sets the analysis mode for subsequent queries.
func (m Model) SetMode(mode decklens.AnalysisMode) Model {
	if mode.Valid() {
		m.mode = mode
	}
	return m
}

// SetRunningWithCancel is a test helper that puts the model in a running
// state with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamEventMsg:
		m = m.processEvent(msg.Event)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case TurnDoneMsg:
		m.running = false
		m.cancel = nil
		m.eventCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		m = m.updateBlockFocus()
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		cmd := m.Input.Focus()
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderSession()
		m = m.updateBlockFocus()
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)

	case tea.KeyCtrlT:
		if !m.running {
			m.mode = nextMode(m.mode)
		}
		return m, nil

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, pass keys to both input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// nextMode cycles through the analysis modes in a fixed order.
func nextMode(mode decklens.AnalysisMode) decklens.AnalysisMode {
	switch mode {
	case decklens.ModeSingle:
		return decklens.ModeComparison
	case decklens.ModeComparison:
		return decklens.ModeLLM
	case decklens.ModeLLM:
		return decklens.ModeLLMOnly
	default:
		return decklens.ModeSingle
	}
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	// The runner archives the query and answer into the session; the TUI
	// only adds display blocks.
	m.blocks = append(m.blocks, NewQueryBlock(text, m.mode, m.styles))
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	// Reset live-turn state.
	m.turn = decklens.NewProgress()
	m.steps = nil
	m.code = nil
	m.answer = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan decklens.Event, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startTurn(m.run, ctx, m.session, text, m.mode, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
	)
}

// renderSession creates blocks from the existing session transcript.
func (m Model) renderSession() Model {
	for _, msg := range m.session.Messages {
		switch msg := msg.(type) {
		case decklens.QueryMessage:
			m.blocks = append(m.blocks, NewQueryBlock(msg.Text, msg.Mode, m.styles))
		case decklens.AnswerMessage:
			if len(msg.Steps) > 0 {
				m.blocks = append(m.blocks, NewStepsBlockFromArchive(msg.Steps, m.styles))
			}
			if msg.Code != "" {
				m.blocks = append(m.blocks, NewCodeBlockFromArchive(msg.Code, m.styles))
			}
			if msg.Execution != nil {
				m.blocks = append(m.blocks, NewExecutionBlock(*msg.Execution, m.styles))
			}
			if msg.Response != "" {
				answer := NewAnswerBlock(m.styles)
				answer.SetText(msg.Response)
				m.blocks = append(m.blocks, answer)
			}
			if msg.Result != nil {
				m.blocks = append(m.blocks, NewResultBlock(msg.Result, m.styles))
			}
			if msg.Err != "" {
				m.blocks = append(m.blocks, NewErrorBlock(msg.Err, m.styles))
			}
		}
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// processEvent folds a streaming event into the turn state and routes it to
// the appropriate block.
func (m Model) processEvent(evt decklens.Event) Model {
	m.turn.Apply(evt)

	switch e := evt.(type) {
	case decklens.EventStart:
		m.steps = nil
		m.code = nil
		m.answer = nil

	case decklens.EventNodeStart, decklens.EventNodeDetail, decklens.EventNodeComplete:
		if m.steps == nil {
			m.steps = NewStepsBlock(m.styles)
			m.blocks = append(m.blocks, m.steps)
		}
		m.steps.SetSteps(m.turn.Steps)

	case decklens.EventCodeLine, decklens.EventCodeComplete:
		if m.code == nil {
			m.code = NewCodeBlock(m.styles)
			m.blocks = append(m.blocks, m.code)
		}
		m.code.SetCode(m.turn.Code)

	case decklens.EventExecutionResult:
		if m.turn.Execution != nil {
			m.blocks = append(m.blocks, NewExecutionBlock(*m.turn.Execution, m.styles))
		}

	case decklens.EventResponseStart:
		m = m.ensureAnswer()

	case decklens.EventResponseChunk:
		m = m.ensureAnswer()
		m.answer.Append(e.Chunk)

	case decklens.EventResponseComplete:
		m = m.ensureAnswer()
		m.answer.SetText(e.Response)

	case decklens.EventComplete:
		if m.turn.Result != nil {
			m.blocks = append(m.blocks, NewResultBlock(m.turn.Result, m.styles))
		}

	case decklens.EventError:
		m.blocks = append(m.blocks, NewErrorBlock(e.Message, m.styles))
	}
	return m
}

func (m Model) ensureAnswer() Model {
	if m.answer == nil {
		m.answer = NewAnswerBlock(m.styles)
		m.blocks = append(m.blocks, m.answer)
	}
	return m
}

// updateBlockFocus scans backwards to find the last collapsible block.
// Only the focused block responds to Tab; ShiftTab cycles to the previous
// collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		switch m.blocks[i].(type) {
		case *StepsBlock, *CodeBlock, *ExecutionBlock:
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		switch m.blocks[idx].(type) {
		case *StepsBlock, *CodeBlock, *ExecutionBlock:
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Erro: %v", m.err))
	}
	if m.running {
		status := "Consultando..."
		if m.turn.RetryCount > 0 {
			status += fmt.Sprintf(" (tentativa %d/%d)", m.turn.RetryCount, m.turn.MaxRetries)
		}
		return m.styles.Muted.Render(status)
	}
	return m.styles.Muted.Render(
		fmt.Sprintf("Enter envia · Ctrl+T modo: %s · Ctrl+C sai", m.mode))
}

// startTurn runs one query turn in a goroutine and signals completion.
func startTurn(run RunFunc, ctx context.Context, session *decklens.Session, text string, mode decklens.AnalysisMode, eventCh chan<- decklens.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := run(ctx, session, text, mode, func(e decklens.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		})
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel. When the channel
// closes, it reads the error from doneCh and returns TurnDoneMsg.
func listenForEvent(ch <-chan decklens.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return TurnDoneMsg{Err: err}
		}
		return StreamEventMsg{Event: evt}
	}
}
