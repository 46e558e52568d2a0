package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"eventify-cli/query"
	"eventify-cli/seatmap"
	"eventify-cli/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			Padding(0, 1)
	headingStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	pageStyle     = lipgloss.NewStyle().Faint(true)
	pageCurStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	fieldErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Faint(true)
)

func (m appModel) View() string {
	switch m.state {
	case stateLoadingMovies:
		return m.viewLoading("Loading movies...")
	case stateBrowse:
		return m.viewBrowse()
	case stateSelectGenre:
		return m.viewPicker(m.genreList)
	case stateSelectDate:
		return m.viewPicker(m.dateList)
	case stateRecentMovies:
		return m.viewPicker(m.recentList)
	case stateLoadingMovie:
		return m.viewLoading("Loading movie...")
	case stateMovieDetails:
		return m.viewMovieDetails()
	case stateTicketCount:
		return m.viewTicketCount()
	case stateLoadingSeats:
		return m.viewLoading("Loading seats...")
	case stateSelectSeats:
		return m.viewSelectSeats()
	case stateLoadingPayment:
		return m.viewLoading("Preparing payment...")
	case statePayment:
		return m.viewPayment()
	case stateConfirming:
		return m.viewLoading("Confirming payment...")
	case stateBookingSuccess:
		return m.viewBookingSuccess()
	case stateLogin:
		return m.viewLogin()
	case stateRegister:
		return m.viewRegister()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m appModel) viewLoading(message string) string {
	return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), message)
}

func (m appModel) viewBrowse() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Eventify"))
	if m.loggedIn {
		b.WriteString(hint("  " + m.signedInLabel()))
	}
	b.WriteString("\n\n  ")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n  ")
	b.WriteString(hint(fmt.Sprintf("Genre: %s  •  Date: %s  •  %d movies",
		m.genreNameFor(m.filters.GenreID),
		formatDateLabel(m.filters.Date, m.today),
		m.movies.Total)))
	b.WriteString("\n")

	if m.browseErr != "" {
		b.WriteString("  " + errorStyle.Render(m.browseErr) + "\n")
	}

	b.WriteString("\n")
	if len(m.movies.Data) == 0 {
		b.WriteString("  " + hint("No movies match the current filters.") + "\n")
	} else {
		b.WriteString(m.movieList.View())
		b.WriteString("\n  " + m.renderPagination() + "\n")
	}

	b.WriteString("\n  " + hint("/ search • g genre • d date • v recent • [ ] page • enter details • "+m.authHint()+" • q quit"))
	return b.String()
}

func (m appModel) signedInLabel() string {
	if m.role != "" {
		return "signed in as " + m.role
	}
	return "signed in"
}

func (m appModel) authHint() string {
	if m.loggedIn {
		return "ctrl+o sign out"
	}
	return "s sign in"
}

func (m appModel) renderPagination() string {
	links := query.PageLinks(m.movies.CurrentPage, m.movies.LastPage)
	if len(links) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(links))
	for _, link := range links {
		switch {
		case link.Gap:
			parts = append(parts, pageStyle.Render("…"))
		case link.Page == m.movies.CurrentPage:
			parts = append(parts, pageCurStyle.Render(fmt.Sprintf("[%d]", link.Page)))
		default:
			parts = append(parts, pageStyle.Render(fmt.Sprintf(" %d ", link.Page)))
		}
	}
	return strings.Join(parts, " ")
}

func (m appModel) viewPicker(picker interface{ View() string }) string {
	return "\n" + picker.View() + "\n\n  " + hint("enter select • esc back • q quit")
}

func (m appModel) viewMovieDetails() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.movie.Title))
	b.WriteString("\n\n  ")

	meta := []string{}
	if m.movie.DurationMinutes > 0 {
		meta = append(meta, formatDuration(m.movie.DurationMinutes))
	}
	for _, genre := range m.movie.Genres {
		meta = append(meta, genre.Name)
	}
	b.WriteString(hint(strings.Join(meta, " • ")))
	b.WriteString("\n")
	if m.movie.PosterURL != "" {
		b.WriteString("  " + hint("Poster: "+m.movie.PosterURL) + "\n")
	}
	b.WriteString("\n")

	if m.movie.Description != "" {
		desc := lipgloss.NewStyle().Width(maxInt(40, m.width-4)).Render(m.movie.Description)
		b.WriteString("  " + strings.ReplaceAll(desc, "\n", "\n  ") + "\n\n")
	}

	b.WriteString("  " + headingStyle.Render("Showtimes for "+formatDateLabel(m.filters.Date, m.today)) + "\n")
	if len(m.movie.Screenings) == 0 {
		b.WriteString("  " + hint("No showtimes on this date.") + "\n")
	} else {
		b.WriteString(m.screeningList.View())
	}

	b.WriteString("\n  " + hint("enter choose showtime • d change date • esc back • q quit"))
	return b.String()
}

func (m appModel) viewTicketCount() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tickets"))
	b.WriteString("\n\n  ")
	b.WriteString(m.screeningSummaryLine())
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  How many tickets?   ◀  %s  ▶\n", headingStyle.Render(fmt.Sprintf("%d", m.ticketCount))))
	if m.ticketCount > 0 {
		total := float64(m.ticketCount) * float64(m.screening.BasePrice)
		b.WriteString(fmt.Sprintf("\n  Total: %s\n", headingStyle.Render(fmt.Sprintf("$%.2f", total))))
	}

	gate := "enter continue"
	if m.ticketCount < 1 {
		gate = hint("choose at least 1 ticket to continue")
	}
	b.WriteString("\n  " + hint("←/→ adjust • ") + gate + hint(" • esc back • q quit"))
	return b.String()
}

func (m appModel) viewSelectSeats() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select Seats"))
	b.WriteString("\n\n  ")
	b.WriteString(m.screeningSummaryLine())
	b.WriteString("\n\n")

	seatMap := m.renderSeatMap()
	b.WriteString("  " + strings.ReplaceAll(seatMap, "\n", "\n  ") + "\n\n")

	b.WriteString(fmt.Sprintf("  Selected %d of %d: %s\n",
		m.selection.Count(), m.selection.Quota(), seatmap.Summary(m.selection.Seats())))
	b.WriteString(fmt.Sprintf("  Total: %s\n", headingStyle.Render(fmt.Sprintf("$%.2f", m.selection.Total(m.screening.BasePrice)))))

	proceed := "c checkout"
	if !m.selection.Complete() {
		proceed = hint(fmt.Sprintf("select exactly %d seats to continue", m.selection.Quota()))
	}
	b.WriteString("\n  " + hint("arrows move • enter toggle • ") + proceed + hint(" • esc back • q quit"))
	return b.String()
}

func (m appModel) viewPayment() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Payment"))
	b.WriteString("\n\n  ")
	b.WriteString(m.screeningSummaryLine())
	b.WriteString("\n\n")
	b.WriteString("  Seats: " + seatmap.Summary(m.selection.Seats()) + "\n")
	b.WriteString(fmt.Sprintf("  Total: %s\n", headingStyle.Render(fmt.Sprintf("$%.2f", m.selection.Total(m.screening.BasePrice)))))
	b.WriteString("\n  " + hint("Complete the card payment in your browser, then confirm here.") + "\n")

	if m.payErr != "" {
		b.WriteString("\n  " + errorStyle.Render(m.payErr) + "\n")
	}

	b.WriteString("\n  " + hint("o open payment page • enter confirm payment • esc back • q quit"))
	return b.String()
}

func (m appModel) viewBookingSuccess() string {
	var b strings.Builder

	b.WriteString("\n  " + okStyle.Render("✓ Booking confirmed!"))
	b.WriteString("\n\n  ")
	b.WriteString(m.screeningSummaryLine())
	b.WriteString("\n\n")
	b.WriteString("  Seats: " + seatmap.Summary(m.selection.Seats()) + "\n")
	if m.booking.Id > 0 {
		b.WriteString(fmt.Sprintf("  Booking reference: #%d\n", m.booking.Id))
	}
	b.WriteString("\n  " + hint("enter back to movies • q quit"))
	return b.String()
}

func (m appModel) viewLogin() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sign In"))
	b.WriteString("\n\n  ")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n  ")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n")

	if m.authBusy {
		b.WriteString("\n  " + m.spinner.View() + " Signing in...\n")
	}
	if m.authErr != "" {
		b.WriteString("\n  " + errorStyle.Render(m.authErr) + "\n")
	}

	b.WriteString("\n  " + hint("tab switch field • enter sign in • ctrl+r create account • esc back"))
	return b.String()
}

func (m appModel) viewRegister() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Create Account"))
	b.WriteString("\n\n")

	fieldKeys := []string{"FirstName", "LastName", "Email", "Password", "PhoneNumber", "City", "Address"}
	for field, input := range m.regInputs {
		b.WriteString("  " + input.View() + "\n")
		if msg, ok := m.regErrors[fieldKeys[field]]; ok {
			b.WriteString("    " + fieldErrStyle.Render(msg) + "\n")
		}
	}

	genderLine := fmt.Sprintf("Gender: ◀ %s ▶", m.regGender)
	if m.regFocus == regFieldGender {
		genderLine = headingStyle.Render(genderLine)
	}
	b.WriteString("  " + genderLine + "\n")
	if msg, ok := m.regErrors["Gender"]; ok {
		b.WriteString("    " + fieldErrStyle.Render(msg) + "\n")
	}

	if m.authBusy {
		b.WriteString("\n  " + m.spinner.View() + " Creating account...\n")
	}
	if m.authErr != "" {
		b.WriteString("\n  " + errorStyle.Render(m.authErr) + "\n")
	}

	b.WriteString("\n  " + hint("tab next field • enter on last field submits • esc back to sign in"))
	return b.String()
}

func (m appModel) viewError() string {
	message := service.ErrorMessage(m.err, "Something went wrong")
	return "\n  " + errorStyle.Render("Error: "+message) + "\n\n  " + hint("enter/esc go back • ctrl+c quit")
}

func (m appModel) screeningSummaryLine() string {
	title := ""
	if m.screening.Movie != nil {
		title = m.screening.Movie.Title
	}
	if title == "" {
		title = m.movie.Title
	}
	parts := []string{headingStyle.Render(title)}
	if !m.screening.StartTime.IsZero() {
		parts = append(parts, m.screening.StartTime.Format("Mon Jan 2 15:04"))
	}
	if m.screening.Showroom != nil {
		parts = append(parts, m.screening.Showroom.Name)
	}
	return strings.Join(parts, " • ")
}

func formatDateLabel(date, today string) string {
	if date == today {
		return "Today"
	}
	parsed, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return parsed.Format("Mon, Jan 2")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
