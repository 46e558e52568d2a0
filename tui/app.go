package tui

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"eventify-cli/config"
	"eventify-cli/model"
	"eventify-cli/query"
	"eventify-cli/seatmap"
	"eventify-cli/service"
	"eventify-cli/store"
)

type appState int

const (
	stateLoadingMovies appState = iota
	stateBrowse
	stateSelectGenre
	stateSelectDate
	stateRecentMovies
	stateLoadingMovie
	stateMovieDetails
	stateTicketCount
	stateLoadingSeats
	stateSelectSeats
	stateLoadingPayment
	statePayment
	stateConfirming
	stateBookingSuccess
	stateLogin
	stateRegister
	stateError
)

type appModel struct {
	client *service.Client
	cfg    config.Config
	log    *zap.Logger

	state     appState
	lastState appState
	err       error

	width  int
	height int

	today string

	// Browse: the committed filter set plus the raw search buffer. The
	// buffer updates on every keystroke; the filter set only changes through
	// commits, and a fetch fires only when the committed set differs from
	// the one behind the current movie page.
	filters     query.FilterSet
	lastFetched query.FilterSet
	hasFetched  bool
	searchInput textinput.Model
	debounce    *query.Debouncer
	// gen is shared across model copies so a fetch started from any copy
	// (including Init's) is ordered against the latest one.
	gen       *query.Generation
	browseErr string

	movies     model.MoviePage
	movieList  list.Model
	genres     []model.Genre
	genreList  list.Model
	dateList   list.Model
	recentList list.Model

	movie         model.Movie
	screeningList list.Model
	// dateReturn is where the date picker goes back to: the browse page by
	// default, or the details page when opened from there.
	dateReturn appState

	screening   model.Screening
	ticketCount int

	grid      seatmap.Grid
	selection *seatmap.Selection
	cursorRow int
	cursorCol int

	intent  model.PaymentIntent
	payErr  string
	booking model.Booking

	loggedIn    bool
	role        string
	resumeState appState
	resumeSet   bool

	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	authBusy      bool
	authErr       string

	regInputs []textinput.Model
	regGender string
	regFocus  int
	regErrors map[string]string

	spinner spinner.Model
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type moviesMsg struct {
	page    model.MoviePage
	filters query.FilterSet
	gen     int
	err     error
}

type genresMsg struct {
	genres []model.Genre
	err    error
}

type movieMsg struct {
	movie model.Movie
	gen   int
	err   error
}

type screeningMsg struct {
	screening model.Screening
	gen       int
	err       error
}

type seatsMsg struct {
	seats model.SeatList
	gen   int
	err   error
}

type intentMsg struct {
	intent model.PaymentIntent
	gen    int
	err    error
}

type confirmMsg struct {
	booking model.Booking
	err     error
}

type searchDebounceMsg struct {
	gen int
}

type loginMsg struct {
	role string
	err  error
}

type registerMsg struct {
	err error
}

type logoutMsg struct{}

func New(cfg config.Config, log *zap.Logger) tea.Model {
	today := query.Today(time.Now())

	raw, _ := store.LoadLastFilters()
	if env := strings.TrimSpace(os.Getenv("EVENTIFY_FILTERS")); env != "" {
		raw = env
	}
	values, _ := url.ParseQuery(raw)
	filters, rewritten := query.ParseFilters(values, today)
	if rewritten {
		// Keep the persisted copy consistent with the effective state.
		_ = store.SaveLastFilters(filters.Encode())
	}

	token, _ := store.LoadToken()

	m := appModel{
		client:     service.NewClient(nil, cfg.APIBaseURL, store.Tokens{}),
		cfg:        cfg,
		log:        log,
		state:      stateLoadingMovies,
		dateReturn: stateBrowse,
		today:      today,
		filters:    filters,
		debounce:   query.NewDebouncer(query.DebounceDelay),
		gen:        &query.Generation{},
		loggedIn:   token != "",
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search Movies"
	m.searchInput.Prompt = "/ "
	m.searchInput.CharLimit = 80
	m.searchInput.SetValue(filters.Search)

	m.movieList = newList("Now Showing")
	m.genreList = newList("Select Genre")
	m.dateList = newList("Select Date")
	m.recentList = newList("Recently Viewed")
	m.screeningList = newList("Showtimes")

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "Email"
	m.emailInput.CharLimit = 120
	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "Password"
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.CharLimit = 120

	m.regInputs = newRegisterInputs()
	m.regGender = "male"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchGenresCmd(), m.fetchMoviesCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() || m.authBusy {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case searchDebounceMsg:
		if !m.debounce.Fire(msg.gen) {
			return m, nil
		}
		// A commit that lands after the user navigated away is dropped.
		if m.state != stateBrowse && m.state != stateLoadingMovies {
			return m, nil
		}
		cmd := m.commitFilters(m.filters.WithSearch(m.searchInput.Value()))
		return m, cmd

	case moviesMsg:
		if !m.gen.IsCurrent(msg.gen) {
			m.log.Debug("discarding stale movie page", zap.Int("generation", msg.gen))
			return m, nil
		}
		if msg.err != nil {
			// The browse page stays interactive on a fetch failure.
			m.browseErr = service.ErrorMessage(msg.err, "Error loading movies")
			m.state = stateBrowse
			return m, nil
		}
		m.browseErr = ""
		m.movies = msg.page
		m.lastFetched = msg.filters
		m.hasFetched = true
		m.movieList.SetItems(buildMovieItems(msg.page.Data))
		m.movieList.Select(0)
		m.state = stateBrowse
		return m, nil

	case genresMsg:
		if msg.err != nil {
			m.log.Warn("genre list unavailable", zap.Error(msg.err))
			return m, nil
		}
		m.genres = msg.genres
		m.genreList.SetItems(buildGenreItems(msg.genres))
		return m, nil

	case movieMsg:
		if !m.gen.IsCurrent(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateBrowse)
		}
		m.movie = msg.movie
		_ = store.RememberMovie(msg.movie)
		m.screeningList.Title = fmt.Sprintf("Showtimes • %s", msg.movie.Title)
		m.screeningList.SetItems(buildScreeningItems(msg.movie.Screenings))
		m.screeningList.Select(0)
		m.state = stateMovieDetails
		return m, nil

	case screeningMsg:
		if !m.gen.IsCurrent(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateMovieDetails)
		}
		m.screening = msg.screening
		m.ticketCount = 0
		m.state = stateTicketCount
		return m, nil

	case seatsMsg:
		if !m.gen.IsCurrent(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateTicketCount)
		}
		m.screening = msg.seats.Screening
		m.grid = seatmap.BuildGrid(msg.seats.Seats)
		m.selection = seatmap.NewSelection(m.ticketCount)
		m.cursorRow = 0
		m.cursorCol = 0
		m.state = stateSelectSeats
		return m, nil

	case intentMsg:
		if !m.gen.IsCurrent(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			if service.IsUnauthorized(msg.err) {
				return m.gotoLogin(stateSelectSeats), nil
			}
			return m, errWithReturnCmd(msg.err, stateSelectSeats)
		}
		m.intent = msg.intent
		m.payErr = ""
		m.state = statePayment
		return m, nil

	case confirmMsg:
		if msg.err != nil {
			if service.IsUnauthorized(msg.err) {
				return m.gotoLogin(statePayment), nil
			}
			// Business rejection: keep the payment state so the user can
			// correct and resubmit.
			m.payErr = service.ErrorMessage(msg.err, "Payment failed")
			m.state = statePayment
			return m, nil
		}
		m.booking = msg.booking
		m.state = stateBookingSuccess
		return m, nil

	case loginMsg:
		m.authBusy = false
		if msg.err != nil {
			m.authErr = service.ErrorMessage(msg.err, "Login failed. Please check your credentials.")
			return m, nil
		}
		m.loggedIn = true
		m.role = msg.role
		m.authErr = ""
		m.passwordInput.SetValue("")
		return m.resumeAfterLogin()

	case registerMsg:
		m.authBusy = false
		if msg.err != nil {
			m.authErr = service.ErrorMessage(msg.err, "Registration failed. Please try again.")
			return m, nil
		}
		m.authErr = ""
		m.state = stateLogin
		return m, nil

	case logoutMsg:
		m.loggedIn = false
		m.role = ""
		return m, nil
	}

	return m.updateComponents(msg)
}

func (m appModel) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateBrowse:
		if m.searchInput.Focused() {
			return m.updateSearchInput(msg)
		}
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectGenre:
		m.genreList, cmd = m.genreList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	case stateRecentMovies:
		m.recentList, cmd = m.recentList.Update(msg)
	case stateMovieDetails:
		m.screeningList, cmd = m.screeningList.Update(msg)
	case stateLogin:
		return m.updateLoginInputs(msg)
	case stateRegister:
		return m.updateRegisterInputs(msg)
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	// Text inputs own the keyboard while focused; only esc and enter break
	// out, handled by the state-specific handlers below.
	switch m.state {
	case stateBrowse:
		return m.handleBrowseKey(msg)
	case stateSelectGenre:
		return m.handleGenreKey(msg)
	case stateSelectDate:
		return m.handleDateKey(msg)
	case stateRecentMovies:
		return m.handleRecentsKey(msg)
	case stateMovieDetails:
		return m.handleDetailsKey(msg)
	case stateTicketCount:
		return m.handleTicketKey(msg)
	case stateSelectSeats:
		return m.handleSeatsKey(msg)
	case statePayment:
		return m.handlePaymentKey(msg)
	case stateBookingSuccess:
		return m.handleSuccessKey(msg)
	case stateLogin:
		return m.handleLoginKey(msg)
	case stateRegister:
		return m.handleRegisterKey(msg)
	case stateError:
		if msg.String() == "esc" || msg.Type == tea.KeyEnter {
			m.state = m.lastState
			m.err = nil
			return m, nil, true
		}
	}

	if msg.String() == "q" && !m.isLoadingState() {
		return m, tea.Quit, true
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	// Invalidate any in-flight fetch so a late response cannot mutate the
	// page we are leaving.
	m.gen.Next()

	switch m.state {
	case stateSelectDate:
		m.state = m.dateReturn
		m.dateReturn = stateBrowse
	case stateSelectGenre, stateRecentMovies:
		m.state = stateBrowse
	case stateMovieDetails:
		// A date change made from details invalidates the movie page.
		if !m.hasFetched {
			m.state = stateLoadingMovies
			return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
		}
		m.state = stateBrowse
	case stateTicketCount:
		m.state = stateMovieDetails
	case stateSelectSeats:
		m.state = stateTicketCount
	case statePayment:
		m.state = stateSelectSeats
	case stateBookingSuccess:
		m.state = stateBrowse
	case stateLogin, stateRegister:
		if m.resumeSet {
			m.state = m.resumeState
			m.resumeSet = false
		} else {
			m.state = stateBrowse
		}
	case stateError:
		m.state = m.lastState
	}
	return m, nil
}

func (m appModel) gotoLogin(resume appState) appModel {
	m.resumeState = resume
	m.resumeSet = true
	m.authErr = ""
	m.loginFocus = 0
	m.emailInput.Focus()
	m.passwordInput.Blur()
	m.state = stateLogin
	return m
}

func (m appModel) resumeAfterLogin() (tea.Model, tea.Cmd) {
	if !m.resumeSet {
		m.state = stateBrowse
		return m, nil
	}
	resume := m.resumeState
	m.resumeSet = false
	switch resume {
	case stateSelectSeats, statePayment:
		// Retry the payment-intent step that triggered the login.
		m.state = stateLoadingPayment
		return m, tea.Batch(m.createIntentCmd(), m.spinner.Tick)
	default:
		m.state = resume
		return m, nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingMovies ||
		m.state == stateLoadingMovie ||
		m.state == stateLoadingSeats ||
		m.state == stateLoadingPayment ||
		m.state == stateConfirming
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 8
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.genreList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
	m.recentList.SetSize(m.width, h)
	m.screeningList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errWithReturnCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState, returnStateSet: true}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingMovies:
		return stateBrowse
	case stateLoadingMovie:
		return stateBrowse
	case stateLoadingSeats:
		return stateTicketCount
	case stateLoadingPayment, stateConfirming:
		return stateSelectSeats
	default:
		return state
	}
}

// commitFilters applies a committed filter change: persist the serialized
// form, then fetch exactly when the canonical set differs from the one
// behind the current page.
func (m *appModel) commitFilters(next query.FilterSet) tea.Cmd {
	m.filters = next
	if err := store.SaveLastFilters(next.Encode()); err != nil {
		m.log.Warn("persist filters", zap.Error(err))
	}
	if m.hasFetched && next.Equal(m.lastFetched) {
		return nil
	}
	m.state = stateLoadingMovies
	return tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
}

func (m *appModel) fetchMoviesCmd() tea.Cmd {
	gen := m.gen.Next()
	filters := m.filters
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		page, err := client.ListMovies(ctx, filters)
		return moviesMsg{page: page, filters: filters, gen: gen, err: err}
	}
}

func (m *appModel) fetchGenresCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if cached, fresh, err := store.LoadGenreCache(); err == nil && fresh && len(cached) > 0 {
			return genresMsg{genres: cached}
		}
		ctx := context.Background()
		genres, err := client.ListGenres(ctx)
		if err == nil && len(genres) > 0 {
			_ = store.SaveGenreCache(genres)
		}
		return genresMsg{genres: genres, err: err}
	}
}

func (m *appModel) fetchMovieCmd(id int64) tea.Cmd {
	gen := m.gen.Next()
	date := m.filters.Date
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		movie, err := client.GetMovieByID(ctx, id, date)
		return movieMsg{movie: movie, gen: gen, err: err}
	}
}

func (m *appModel) fetchScreeningCmd(id int64) tea.Cmd {
	gen := m.gen.Next()
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		screening, err := client.GetScreeningByID(ctx, id)
		return screeningMsg{screening: screening, gen: gen, err: err}
	}
}

func (m *appModel) fetchSeatsCmd(screeningID int64) tea.Cmd {
	gen := m.gen.Next()
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		seats, err := client.ListSeats(ctx, screeningID)
		return seatsMsg{seats: seats, gen: gen, err: err}
	}
}

func (m *appModel) createIntentCmd() tea.Cmd {
	gen := m.gen.Next()
	client := m.client
	screeningID := m.screening.Id
	seatIDs := m.selection.SeatIDs()
	return func() tea.Msg {
		ctx := context.Background()
		intent, err := client.CreatePaymentIntent(ctx, screeningID, seatIDs)
		return intentMsg{intent: intent, gen: gen, err: err}
	}
}

func (m *appModel) confirmPaymentCmd() tea.Cmd {
	client := m.client
	intentID := intentIDFromSecret(m.intent.ClientSecret)
	screeningID := m.screening.Id
	seatIDs := m.selection.SeatIDs()
	return func() tea.Msg {
		ctx := context.Background()
		booking, err := client.ConfirmPayment(ctx, intentID, screeningID, seatIDs)
		return confirmMsg{booking: booking, err: err}
	}
}

func (m *appModel) logoutCmd() tea.Cmd {
	client := m.client
	log := m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Logout(ctx); err != nil {
			// Local session state clears regardless, so the user is never
			// stuck logged in locally against server intent.
			log.Warn("logout request failed", zap.Error(err))
		}
		if err := store.ClearToken(); err != nil {
			log.Warn("clear token", zap.Error(err))
		}
		return logoutMsg{}
	}
}

// intentIDFromSecret derives the payment-intent id from its client secret
// ("pi_123_secret_abc" carries the id before the "_secret" marker).
func intentIDFromSecret(secret string) string {
	if i := strings.Index(secret, "_secret"); i > 0 {
		return secret[:i]
	}
	return secret
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS for opening browser: %s", runtime.GOOS)
	}
}
