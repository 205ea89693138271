package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/engine"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/story"
)

const placeholderText = "Type a command..."

// entry is one line group of the transcript: a player command or the
// game text it produced.
type entry struct {
	player bool
	text   string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx    context.Context
	logger *slog.Logger
	store  storage.Store

	eng        *engine.Engine
	engOut     *bytes.Buffer
	transcript []entry

	gameViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	status       string

	// Story selection state
	showStoryModal bool
	stories        []story.Info
	selectedStory  int

	// Quit confirmation state
	showQuitModal bool
}

type storyLoadedMsg struct {
	eng *engine.Engine
	out *bytes.Buffer
	err error
}

var (
	gamePanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(ctx context.Context, logger *slog.Logger, store storage.Store, stories []story.Info) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	gameVp := viewport.New(50, 20)
	gameVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		ctx:            ctx,
		logger:         logger,
		store:          store,
		textarea:       ta,
		gameViewport:   gameVp,
		metaViewport:   metaVp,
		showStoryModal: true,
		stories:        stories,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

// loadStory builds the engine for the selected story. The engine writes
// into a buffer the UI drains after every command.
func (m ConsoleUI) loadStory(info story.Info) tea.Cmd {
	return func() tea.Msg {
		s, err := story.NewLoader(m.logger).Load(info.Dir)
		if err != nil {
			return storyLoadedMsg{err: err}
		}
		gs, err := state.NewGameState(s)
		if err != nil {
			return storyLoadedMsg{err: err}
		}

		out := &bytes.Buffer{}
		eng := engine.New(gs, m.store, out, nil, m.logger)
		eng.SetQuitConfirmer(func() bool { return true })
		eng.Execute(m.ctx, command.Parse("look"))

		return storyLoadedMsg{eng: eng, out: out}
	}
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showStoryModal {
		return m.updateStoryModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.gameViewport, vpCmd = m.gameViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.writeGameContent()
		m.writeMetadata()
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			m.copyTranscript()
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			return m.runCommand(input)
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.gameViewport, vpCmd = m.gameViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// runCommand feeds one input line through the engine and folds the
// output into the transcript. Quit goes through the modal instead.
func (m ConsoleUI) runCommand(input string) (tea.Model, tea.Cmd) {
	cmd := command.Parse(input)
	if cmd.Type == command.Quit {
		m.showQuitModal = true
		return m, nil
	}

	m.transcript = append(m.transcript, entry{player: true, text: input})
	m.status = ""

	m.engOut.Reset()
	m.eng.Execute(m.ctx, cmd)
	if text := strings.TrimRight(m.engOut.String(), "\n"); text != "" {
		m.transcript = append(m.transcript, entry{text: text})
	}

	m.writeGameContent()
	m.writeMetadata()
	return m, nil
}

func (m *ConsoleUI) copyTranscript() {
	var plain strings.Builder
	for _, en := range m.transcript {
		if en.player {
			plain.WriteString("> " + en.text + "\n")
		} else {
			plain.WriteString(en.text + "\n\n")
		}
	}
	if err := clipboard.WriteAll(plain.String()); err != nil {
		m.status = "Clipboard unavailable"
		m.logger.Warn("failed to copy transcript", "error", err)
	} else {
		m.status = "Transcript copied to clipboard"
	}
	m.writeMetadata()
}

func (m *ConsoleUI) layout() {
	gameWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - gameWidth - 6

	m.gameViewport.Width = gameWidth - 2
	m.gameViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(gameWidth - 4)
}

func (m *ConsoleUI) writeGameContent() {
	width := m.gameViewport.Width - 6
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	title := "ADVENTURE"
	if m.eng != nil {
		title = strings.ToUpper(m.eng.State().Story.Metadata.Title)
	}
	content.WriteString(titleStyle.Render(title) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, en := range m.transcript {
		if en.player {
			content.WriteString(userStyle.Render("> "+en.text) + "\n\n")
		} else {
			content.WriteString(gameStyle.Render(wordwrap.String(en.text, width)) + "\n\n")
		}
	}

	m.gameViewport.SetContent(content.String())
	m.gameViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() {
	if m.eng == nil {
		return
	}
	gs := m.eng.State()

	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	content.WriteString("Session:\n")
	content.WriteString(gs.ID.String()[:8] + "...\n\n")

	content.WriteString("Room:\n")
	content.WriteString(gs.CurrentRoom.Name + "\n\n")

	content.WriteString(fmt.Sprintf("Turns: %d\n", gs.TurnCount))
	content.WriteString(fmt.Sprintf("Score: %d\n", gs.Score))
	content.WriteString(fmt.Sprintf("Deaths: %d\n", gs.DeathCount))
	content.WriteString(fmt.Sprintf("Weight: %d/%d\n\n", gs.InventoryWeight, gs.Story.Metadata.MaxInventoryWeight))

	visited := 0
	for _, r := range gs.Story.Rooms {
		if r.Visited {
			visited++
		}
	}
	content.WriteString(fmt.Sprintf("Explored: %d/%d rooms\n", visited, len(gs.Story.Rooms)))

	done := 0
	for _, q := range gs.Story.Quests {
		if q.Completed {
			done++
		}
	}
	content.WriteString(fmt.Sprintf("Quests: %d/%d\n", done, len(gs.Story.Quests)))
	if gs.GameWon {
		content.WriteString(titleStyle.Render("VICTORY!") + "\n")
	}

	content.WriteString("\nKeys:\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+Y: Copy log\n")
	content.WriteString("• Ctrl+C: Quit\n")

	if m.status != "" {
		content.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	m.metaViewport.SetContent(content.String())
}

func (m ConsoleUI) updateStoryModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case storyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng = msg.eng
		m.engOut = msg.out
		if text := strings.TrimRight(m.engOut.String(), "\n"); text != "" {
			m.transcript = append(m.transcript, entry{text: text})
		}
		m.engOut.Reset()
		m.showStoryModal = false
		if m.width > 0 && m.height > 0 {
			m.layout()
			m.writeGameContent()
			m.writeMetadata()
			m.ready = true
		}
		m.textarea.Focus()
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.selectedStory > 0 {
				m.selectedStory--
			}
		case tea.KeyDown:
			if m.selectedStory < len(m.stories)-1 {
				m.selectedStory++
			}
		case tea.KeyEnter:
			if len(m.stories) > 0 {
				return m, m.loadStory(m.stories[m.selectedStory])
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderStoryModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load story: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else {
		content.WriteString(modalTitleStyle.Render("Select a Story"))
		content.WriteString("\n\n")

		for i, info := range m.stories {
			label := info.Title
			if info.Author != "" {
				label += " by " + info.Author
			}
			if i == m.selectedStory {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", label)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", label)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showStoryModal {
		return m.renderStoryModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	gameWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - gameWidth - 6

	gamePanel := gamePanelStyle.Width(gameWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.gameViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", gameWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, gamePanel, metaPanel)
}
