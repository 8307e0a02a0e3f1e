// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pato/ratatype/internal/generator"
	"github.com/pato/ratatype/internal/history"
	"github.com/pato/ratatype/internal/model"
	"github.com/pato/ratatype/internal/session"
	statsPkg "github.com/pato/ratatype/internal/stats"
	"github.com/pato/ratatype/internal/store"
)

const (
	// visibleChars caps how much of the target the typing screen shows.
	visibleChars = 300
	tickInterval = 50 * time.Millisecond
	rankingSize  = 3
	sparkWidth   = 24
)

var (
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	correctedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	wrongStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFFFFF"))
	timerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E3B341"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950")).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E3B341"))
)

// tickMsg drives the countdown. gen ties each tick chain to the session it
// was scheduled for so ticks from a finished or restarted session die out
// instead of double-scheduling.
type tickMsg struct {
	gen int
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config   model.Config
	store    *store.Store
	provider *generator.Provider
	recorder *history.Recorder

	engine   *session.Engine
	gen      int
	recorded bool

	weakNoticePrinted bool

	width  int
	height int
}

// NewModel constructs a typing TUI model. The store may be nil when the
// database could not be opened; archiving and weak-key refresh are skipped
// in that case.
func NewModel(cfg model.Config, st *store.Store, provider *generator.Provider, recorder *history.Recorder, weakNoticePrinted bool) *Model {
	m := &Model{
		config:            cfg,
		store:             st,
		provider:          provider,
		recorder:          recorder,
		weakNoticePrinted: weakNoticePrinted,
	}
	m.startSession()
	return m
}

func (m *Model) startSession() {
	m.engine = session.New(m.provider.Text(), session.Config{
		Duration:          time.Duration(m.config.Duration) * time.Second,
		RequireCorrection: m.config.RequireCorrection,
	})
	m.gen++
	m.recorded = false
}

func (m *Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.gen != m.gen || m.engine.Finished() {
			return m, nil
		}
		m.engine.CheckTimeout()
		if m.engine.Finished() {
			m.finishSession()
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if m.engine.Finished() {
			m.startSession()
			return m, m.tick()
		}
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		if !m.engine.Finished() {
			m.engine.Backspace()
		}
		return m, nil
	case tea.KeySpace:
		m.typeRunes([]rune{' '})
		return m, nil
	case tea.KeyRunes:
		m.typeRunes(msg.Runes)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) typeRunes(runes []rune) {
	if m.engine.Finished() {
		return
	}
	for _, r := range runes {
		m.engine.TypeRune(r)
		if m.engine.Finished() {
			break
		}
	}
	if m.engine.Finished() {
		m.finishSession()
	}
}

// finishSession archives the completed session exactly once: a CSV history
// line, a database row with per-key stats, and a weak-key refresh for the
// next text. Archive failures are logged and never abort the flow.
func (m *Model) finishSession() {
	if m.recorded || !m.engine.Started() {
		return
	}
	m.recorded = true

	endedAt := time.Now()
	rec := model.SessionRecord{
		StartedAt:         m.engine.StartedAt(),
		EndedAt:           endedAt,
		DurationSeconds:   m.config.Duration,
		Source:            m.config.Source.String(),
		MaxWordLength:     m.config.MaxWordLength,
		RequireCorrection: m.config.RequireCorrection,
		CharsTyped:        m.engine.Cursor(),
		Keystrokes:        m.engine.Keystrokes(),
		Errors:            m.engine.Errors(),
		AvgWPM:            m.engine.WPM().Average(),
		PeakWPM:           m.engine.WPM().Peak(),
		Accuracy:          m.engine.Accuracy(),
	}

	if m.recorder != nil {
		err := m.recorder.Append(model.HistoryRecord{
			Timestamp:         endedAt.Unix(),
			DurationSeconds:   rec.DurationSeconds,
			AvgWPM:            rec.AvgWPM,
			PeakWPM:           rec.PeakWPM,
			Accuracy:          rec.Accuracy,
			CharsTyped:        rec.CharsTyped,
			Errors:            rec.Errors,
			RequireCorrection: rec.RequireCorrection,
			Source:            rec.Source,
			MaxWordLength:     rec.MaxWordLength,
		})
		if err != nil {
			logErrf("failed to record history: %v\n", err)
		}
	}

	if m.store == nil {
		return
	}
	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, rec, m.engine.Keys().Stats()); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	ctx := context.Background()
	aggs, err := m.store.KeyAggregates(ctx, m.config.WeakWindow, m.config.Source.String())
	if err != nil {
		logErrf("failed to load weak keys: %v\n", err)
		return
	}
	weakSet := statsPkg.SelectWeakKeys(aggs, m.config.WeakTop)
	if len(weakSet) == 0 && !m.weakNoticePrinted {
		logErrln("no stats available for weak-key focus yet; using the normal generator")
		m.weakNoticePrinted = true
	}
	m.provider.SetWeakKeys(weakSet)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.engine == nil {
		return ""
	}
	if m.engine.Finished() {
		return m.viewResults()
	}
	return m.viewTyping()
}

func (m *Model) viewTyping() string {
	timer := timerStyle.Render(fmt.Sprintf("%.0fs", m.engine.Remaining().Seconds()))
	styledRunes := buildStyledRunes(m.engine.Snapshot(), visibleChars)
	if m.width == 0 || m.height == 0 {
		return timer + "\n\n" + renderStyledRunes(styledRunes) + "\n\n" + m.renderFooter()
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)

	timerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, timer)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	return timerLine + "\n" + body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	footer := fmt.Sprintf("WPM %.0f | Acc %.0f%%", m.engine.WPM().Current(), m.engine.Accuracy())
	values := m.engine.WPM().Values()
	if len(values) > 0 {
		width := 0
		if len(values) > sparkWidth {
			width = sparkWidth
		}
		footer += "  " + statsPkg.Sparkline(values, width)
	}
	return footerStyle.Render(footer)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
