package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventify-cli/model"
)

const maxTicketsPerBooking = 10

var (
	seatAvailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	seatSelectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	seatBookedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	seatCursorStyle    = lipgloss.NewStyle().Reverse(true)
	screenStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

func (m appModel) handleTicketKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		back, cmd := m.goBack()
		return back, cmd, true
	case "up", "k", "right", "l", "+":
		if m.ticketCount < maxTicketsPerBooking {
			m.ticketCount++
		}
		return m, nil, true
	case "down", "j", "left", "h", "-":
		if m.ticketCount > 0 {
			m.ticketCount--
		}
		return m, nil, true
	case "enter":
		// The next step stays gated until at least one ticket is chosen.
		if m.ticketCount < 1 {
			return m, nil, true
		}
		m.state = stateLoadingSeats
		return m, tea.Batch(m.fetchSeatsCmd(m.screening.Id), m.spinner.Tick), true
	}
	return m, nil, true
}

func (m appModel) handleSeatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		back, cmd := m.goBack()
		return back, cmd, true
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
		return m, nil, true
	case "down", "j":
		if m.cursorRow < len(m.grid.RowLabels)-1 {
			m.cursorRow++
		}
		return m, nil, true
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
		return m, nil, true
	case "right", "l":
		if m.cursorCol < m.grid.Columns-1 {
			m.cursorCol++
		}
		return m, nil, true
	case "enter", " ":
		seat := m.seatUnderCursor()
		if seat == nil {
			return m, nil, true
		}
		m.selection.Toggle(*seat)
		return m, nil, true
	case "c":
		// Checkout stays locked until the selection matches the quota exactly.
		if m.selection == nil || !m.selection.Complete() {
			return m, nil, true
		}
		m.state = stateLoadingPayment
		return m, tea.Batch(m.createIntentCmd(), m.spinner.Tick), true
	}
	return m, nil, true
}

func (m appModel) seatUnderCursor() *model.Seat {
	if m.cursorRow < 0 || m.cursorRow >= len(m.grid.RowLabels) {
		return nil
	}
	label := m.grid.RowLabels[m.cursorRow]
	return m.grid.SeatAt(label, m.cursorCol+1)
}

func (m appModel) renderSeatMap() string {
	if m.grid.Columns == 0 || len(m.grid.RowLabels) == 0 {
		return hint("No seats available for this screening.")
	}

	var b strings.Builder

	width := m.grid.Columns*4 + 4
	b.WriteString(screenStyle.Render(center("S C R E E N", width)))
	b.WriteString("\n\n")

	b.WriteString("    ")
	for col := 1; col <= m.grid.Columns; col++ {
		fmt.Fprintf(&b, "%3d ", col)
	}
	b.WriteString("\n")

	for row, label := range m.grid.RowLabels {
		fmt.Fprintf(&b, " %-3s", label)
		for col := 0; col < m.grid.Columns; col++ {
			seat := m.grid.SeatAt(label, col+1)

			var cell string
			var style lipgloss.Style
			switch {
			case seat == nil:
				cell = "    "
				style = seatBookedStyle
			case seat.IsBooked:
				cell = " ██ "
				style = seatBookedStyle
			case m.selection.Contains(seat.Id):
				cell = "[✓] "
				style = seatSelectedStyle
			default:
				cell = "[ ] "
				style = seatAvailableStyle
			}

			if row == m.cursorRow && col == m.cursorCol {
				style = seatCursorStyle
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hint("[ ] available   [✓] selected   ██ taken"))
	return b.String()
}

func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	pad := (width - len(text)) / 2
	return strings.Repeat(" ", pad) + text
}
