package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// tab is one browsable resource collection.
type tab struct {
	title string
	path  string
	// labelKey names the business id shown next to the name.
	labelKey string
}

var tabs = []tab{
	{title: "NPCs", path: "/api/npcs", labelKey: "npc_id"},
	{title: "Cards", path: "/api/cards", labelKey: "card_id"},
	{title: "Scenes", path: "/api/scenes", labelKey: "scene_id"},
	{title: "AI Configs", path: "/api/ai-configs", labelKey: "config_id"},
	{title: "Templates", path: "/api/templates", labelKey: "template_id"},
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config         *ConsoleConfig
	client         *http.Client
	detailViewport viewport.Model
	ready          bool
	width          int
	height         int
	err            error
	loading        bool
	status         string

	activeTab int
	items     []Item
	selected  int
	detail    Item

	// Quit confirmation state
	showQuitModal bool
}

type itemsLoadedMsg struct {
	tab   int
	items []Item
	err   error
}

type detailLoadedMsg struct {
	id   string
	item Item
	err  error
}

var (
	listPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(1)

	detailPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingLeft(1).
				PaddingRight(2).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")). // purple
				Bold(true)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

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
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	vp := viewport.New(40, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		config:         cfg,
		client:         client,
		detailViewport: vp,
		loading:        true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.loadItems(m.activeTab)
}

func (m ConsoleUI) loadItems(tabIndex int) tea.Cmd {
	return func() tea.Msg {
		items, err := listItems(m.client, m.config.APIBaseURL, tabs[tabIndex].path)
		return itemsLoadedMsg{tab: tabIndex, items: items, err: err}
	}
}

func (m ConsoleUI) loadDetail(id string) tea.Cmd {
	path := tabs[m.activeTab].path
	return func() tea.Msg {
		item, err := getItem(m.client, m.config.APIBaseURL, path, id)
		return detailLoadedMsg{id: id, item: item, err: err}
	}
}

func (m ConsoleUI) selectedID() string {
	if m.selected < 0 || m.selected >= len(m.items) {
		return ""
	}
	return m.items[m.selected].String("id")
}

// selectionChanged fetches the full record of the highlighted row.
func (m ConsoleUI) selectionChanged() (tea.Model, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		m.detail = nil
		m.writeDetail()
		return m, nil
	}
	return m, m.loadDetail(id)
}

func (m ConsoleUI) listWidth() int {
	return m.width * 2 / 5
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var vpCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detailViewport.Width = m.width - m.listWidth() - 6
		m.detailViewport.Height = m.height - 6
		m.ready = true
		m.writeDetail()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyTab, tea.KeyRight:
			return m.switchTab((m.activeTab + 1) % len(tabs))
		case tea.KeyShiftTab, tea.KeyLeft:
			return m.switchTab((m.activeTab + len(tabs) - 1) % len(tabs))
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
				return m.selectionChanged()
			}
			return m, nil
		case tea.KeyDown:
			if m.selected < len(m.items)-1 {
				m.selected++
				return m.selectionChanged()
			}
			return m, nil
		}
		switch msg.String() {
		case "q":
			m.showQuitModal = true
			return m, nil
		case "r":
			m.loading = true
			m.status = ""
			return m, m.loadItems(m.activeTab)
		case "c":
			id := m.selectedID()
			if id == "" {
				return m, nil
			}
			if err := clipboard.WriteAll(id); err != nil {
				m.status = errorStyle.Render("Copy failed: " + err.Error())
			} else {
				m.status = idStyle.Render("Copied " + id)
			}
			return m, nil
		}

	case itemsLoadedMsg:
		if msg.tab != m.activeTab {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.items = msg.items
		if m.selected >= len(m.items) {
			m.selected = 0
		}
		return m.selectionChanged()

	case detailLoadedMsg:
		if msg.id != m.selectedID() {
			return m, nil
		}
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		}
		m.detail = msg.item
		m.writeDetail()
		return m, nil
	}

	m.detailViewport, vpCmd = m.detailViewport.Update(msg)
	return m, vpCmd
}

func (m ConsoleUI) switchTab(i int) (tea.Model, tea.Cmd) {
	m.activeTab = i
	m.items = nil
	m.selected = 0
	m.detail = nil
	m.loading = true
	m.status = ""
	m.writeDetail()
	return m, m.loadItems(i)
}

// writeDetail renders the selected record as wrapped, indented JSON.
func (m *ConsoleUI) writeDetail() {
	if m.detail == nil {
		m.detailViewport.SetContent(promptStyle.Render("Nothing selected"))
		return
	}
	data, err := json.MarshalIndent(m.detail, "", "  ")
	if err != nil {
		m.detailViewport.SetContent(errorStyle.Render(err.Error()))
		return
	}
	width := m.detailViewport.Width
	if width <= 0 {
		width = 40
	}
	m.detailViewport.SetContent(wordwrap.String(string(data), width))
	m.detailViewport.GotoTop()
}

func (m ConsoleUI) renderTabs() string {
	rendered := make([]string, 0, len(tabs))
	for i, t := range tabs {
		if i == m.activeTab {
			rendered = append(rendered, activeTabStyle.Render(t.title))
		} else {
			rendered = append(rendered, tabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m ConsoleUI) renderList() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(tabs[m.activeTab].title)) + "\n\n")

	switch {
	case m.loading:
		content.WriteString(loadingStyle.Render("Loading..."))
	case m.err != nil:
		content.WriteString(errorStyle.Render(wordwrap.String("Error: "+m.err.Error(), m.listWidth()-4)))
	case len(m.items) == 0:
		content.WriteString(promptStyle.Render("No entries"))
	default:
		// Keep the selection visible on long lists.
		rows := m.height - 8
		start := 0
		if rows > 0 && m.selected >= rows {
			start = m.selected - rows + 1
		}
		for i := start; i < len(m.items) && (rows <= 0 || i < start+rows); i++ {
			item := m.items[i]
			label := idStyle.Render("(" + item.String(tabs[m.activeTab].labelKey) + ")")
			if i == m.selected {
				content.WriteString(fmt.Sprintf("%s %s", selectedItemStyle.Render("▶ "+item.String("name")), label))
			} else {
				content.WriteString(fmt.Sprintf("  %s %s", item.String("name"), label))
			}
			content.WriteString("\n")
		}
	}
	return content.String()
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
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				return m, nil
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
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Leave the Sultan admin console?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	listWidth := m.listWidth()
	listPanel := listPanelStyle.Width(listWidth).Height(m.height - 4).Render(m.renderList())
	detailPanel := detailPanelStyle.Width(m.width - listWidth - 4).Height(m.height - 4).Render(m.detailViewport.View())

	help := promptStyle.Render("tab/←/→ switch • ↑/↓ select • r reload • c copy id • q quit")
	if m.status != "" {
		help = m.status + "  " + help
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel),
		help,
	)
}
