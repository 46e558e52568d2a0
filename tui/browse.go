package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"eventify-cli/model"
	"eventify-cli/query"
	"eventify-cli/store"
)

const datePickerDays = 14

type movieItem struct {
	movie model.Movie
}

func (i movieItem) Title() string { return i.movie.Title }

func (i movieItem) Description() string {
	parts := []string{}
	if i.movie.DurationMinutes > 0 {
		parts = append(parts, formatDuration(i.movie.DurationMinutes))
	}
	if len(i.movie.Genres) > 0 {
		names := make([]string, 0, len(i.movie.Genres))
		for _, genre := range i.movie.Genres {
			names = append(names, genre.Name)
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	switch n := len(i.movie.Screenings); n {
	case 0:
		parts = append(parts, "no showtimes")
	case 1:
		parts = append(parts, "1 showtime")
	default:
		parts = append(parts, fmt.Sprintf("%d showtimes", n))
	}
	return strings.Join(parts, " • ")
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

type genreItem struct {
	id   string
	name string
}

func (i genreItem) Title() string       { return i.name }
func (i genreItem) Description() string { return "" }
func (i genreItem) FilterValue() string { return i.name }

func buildGenreItems(genres []model.Genre) []list.Item {
	items := make([]list.Item, 0, len(genres)+1)
	items = append(items, genreItem{id: query.GenreAll, name: "All Genres"})
	for _, genre := range genres {
		items = append(items, genreItem{id: fmt.Sprintf("%d", genre.Id), name: genre.Name})
	}
	return items
}

type dateItem struct {
	date  string
	label string
}

func (i dateItem) Title() string       { return i.label }
func (i dateItem) Description() string { return i.date }
func (i dateItem) FilterValue() string { return i.label }

// buildDateItems offers today plus the next two weeks. The picker never
// offers a past date.
func buildDateItems(today string) []list.Item {
	start, err := time.Parse(time.DateOnly, today)
	if err != nil {
		start = time.Now()
	}
	items := make([]list.Item, 0, datePickerDays)
	for day := 0; day < datePickerDays; day++ {
		date := start.AddDate(0, 0, day)
		label := date.Format("Monday, Jan 2")
		switch day {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		}
		items = append(items, dateItem{date: date.Format(time.DateOnly), label: label})
	}
	return items
}

func (m appModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.searchInput.Focused() {
		switch msg.String() {
		case "esc":
			// Leave the input; a pending debounce still commits.
			m.searchInput.Blur()
			return m, nil, true
		case "enter":
			// Commit immediately, superseding any pending debounce.
			m.searchInput.Blur()
			m.debounce.Cancel()
			cmd := m.commitFilters(m.filters.WithSearch(m.searchInput.Value()))
			return m, cmd, true
		}
		return m, nil, false
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit, true
	case "/":
		return m, m.searchInput.Focus(), true
	case "g":
		if len(m.genres) == 0 {
			return m, nil, true
		}
		m.genreList.Select(genreIndexFor(m.genres, m.filters.GenreID))
		m.state = stateSelectGenre
		return m, nil, true
	case "d":
		m.dateList.SetItems(buildDateItems(m.today))
		m.dateList.Select(dateIndexFor(m.today, m.filters.Date))
		m.dateReturn = stateBrowse
		m.state = stateSelectDate
		return m, nil, true
	case "[":
		if m.movies.CurrentPage > 1 {
			cmd := m.commitFilters(m.filters.WithPage(m.movies.CurrentPage - 1))
			return m, cmd, true
		}
		return m, nil, true
	case "]":
		if m.movies.CurrentPage < m.movies.LastPage {
			cmd := m.commitFilters(m.filters.WithPage(m.movies.CurrentPage + 1))
			return m, cmd, true
		}
		return m, nil, true
	case "r":
		m.hasFetched = false
		m.state = stateLoadingMovies
		return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick), true
	case "v":
		recents, err := store.LoadRecentMovies()
		if err != nil || len(recents) == 0 {
			return m, nil, true
		}
		m.recentList.SetItems(buildRecentItems(recents))
		m.recentList.Select(0)
		m.state = stateRecentMovies
		return m, nil, true
	case "s":
		if !m.loggedIn {
			return m.gotoLogin(stateBrowse), nil, true
		}
		return m, nil, true
	case "ctrl+o":
		if m.loggedIn {
			return m, m.logoutCmd(), true
		}
		return m, nil, true
	case "enter":
		item, ok := m.movieList.SelectedItem().(movieItem)
		if !ok {
			return m, nil, true
		}
		m.state = stateLoadingMovie
		return m, tea.Batch(m.fetchMovieCmd(item.movie.Id), m.spinner.Tick), true
	}
	return m, nil, false
}

// updateSearchInput feeds a message to the focused search input and, when the
// text actually changed, schedules a debounced commit.
func (m appModel) updateSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	gen := m.debounce.Schedule()
	tick := tea.Tick(m.debounce.Delay(), func(time.Time) tea.Msg {
		return searchDebounceMsg{gen: gen}
	})
	return m, tea.Batch(cmd, tick)
}

func (m appModel) handleGenreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		back, cmd := m.goBack()
		return back, cmd, true
	case "enter":
		item, ok := m.genreList.SelectedItem().(genreItem)
		if !ok {
			return m, nil, true
		}
		m.state = stateBrowse
		cmd := m.commitFilters(m.filters.WithGenre(item.id))
		return m, cmd, true
	}
	return m, nil, false
}

func (m appModel) handleDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		back, cmd := m.goBack()
		return back, cmd, true
	case "enter":
		item, ok := m.dateList.SelectedItem().(dateItem)
		if !ok {
			return m, nil, true
		}
		if m.dateReturn == stateMovieDetails {
			// Date changed from the details page: persist the committed
			// filter set and refetch this movie's showtimes for the new date.
			m.dateReturn = stateBrowse
			m.filters = m.filters.WithDate(item.date, m.today)
			if err := store.SaveLastFilters(m.filters.Encode()); err != nil {
				m.log.Warn("persist filters", zap.Error(err))
			}
			m.hasFetched = false
			m.state = stateLoadingMovie
			return m, tea.Batch(m.fetchMovieCmd(m.movie.Id), m.spinner.Tick), true
		}
		m.state = stateBrowse
		cmd := m.commitFilters(m.filters.WithDate(item.date, m.today))
		return m, cmd, true
	}
	return m, nil, false
}

type recentItem struct {
	entry store.RecentMovie
}

func (i recentItem) Title() string       { return i.entry.Title }
func (i recentItem) Description() string { return "" }
func (i recentItem) FilterValue() string { return i.entry.Title }

func buildRecentItems(recents []store.RecentMovie) []list.Item {
	items := make([]list.Item, 0, len(recents))
	for _, entry := range recents {
		items = append(items, recentItem{entry: entry})
	}
	return items
}

func (m appModel) handleRecentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		back, cmd := m.goBack()
		return back, cmd, true
	case "enter":
		item, ok := m.recentList.SelectedItem().(recentItem)
		if !ok {
			return m, nil, true
		}
		m.state = stateLoadingMovie
		return m, tea.Batch(m.fetchMovieCmd(item.entry.ID), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		back, cmd := m.goBack()
		return back, cmd, true
	case "d":
		m.dateList.SetItems(buildDateItems(m.today))
		m.dateList.Select(dateIndexFor(m.today, m.filters.Date))
		m.dateReturn = stateMovieDetails
		m.state = stateSelectDate
		return m, nil, true
	case "enter":
		item, ok := m.screeningList.SelectedItem().(screeningItem)
		if !ok {
			return m, nil, true
		}
		m.state = stateLoadingSeats
		return m, tea.Batch(m.fetchScreeningCmd(item.screening.Id), m.spinner.Tick), true
	}
	return m, nil, false
}

type screeningItem struct {
	screening model.Screening
}

func (i screeningItem) Title() string {
	return i.screening.StartTime.Format("15:04")
}

func (i screeningItem) Description() string {
	parts := []string{}
	if i.screening.Showroom != nil {
		parts = append(parts, i.screening.Showroom.Name)
	}
	parts = append(parts, fmt.Sprintf("$%.2f per seat", float64(i.screening.BasePrice)))
	return strings.Join(parts, " • ")
}

func (i screeningItem) FilterValue() string { return i.Title() }

func buildScreeningItems(screenings []model.Screening) []list.Item {
	items := make([]list.Item, 0, len(screenings))
	for _, screening := range screenings {
		items = append(items, screeningItem{screening: screening})
	}
	return items
}

func genreIndexFor(genres []model.Genre, genreID string) int {
	if genreID == query.GenreAll {
		return 0
	}
	for i, genre := range genres {
		if fmt.Sprintf("%d", genre.Id) == genreID {
			return i + 1 // offset for the "All Genres" entry
		}
	}
	return 0
}

func dateIndexFor(today, date string) int {
	start, err := time.Parse(time.DateOnly, today)
	if err != nil {
		return 0
	}
	target, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0
	}
	days := int(target.Sub(start).Hours() / 24)
	if days < 0 || days >= datePickerDays {
		return 0
	}
	return days
}

func (m appModel) genreNameFor(genreID string) string {
	if genreID == "" || genreID == query.GenreAll {
		return "All Genres"
	}
	for _, genre := range m.genres {
		if fmt.Sprintf("%d", genre.Id) == genreID {
			return genre.Name
		}
	}
	return genreID
}

func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
