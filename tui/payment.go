package tui

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) paymentPageURL() string {
	return m.cfg.PaymentURL + "?client_secret=" + url.QueryEscape(m.intent.ClientSecret)
}

func (m appModel) handlePaymentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		back, cmd := m.goBack()
		return back, cmd, true
	case "o":
		return m, openURLCmd(m.paymentPageURL()), true
	case "enter":
		m.payErr = ""
		m.state = stateConfirming
		return m, tea.Batch(m.confirmPaymentCmd(), m.spinner.Tick), true
	}
	return m, nil, true
}

func (m appModel) handleSuccessKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc", "enter":
		// Back to browsing with a fresh page; the booked seats are gone now.
		m.hasFetched = false
		m.selection = nil
		m.state = stateLoadingMovies
		return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick), true
	}
	return m, nil, true
}
