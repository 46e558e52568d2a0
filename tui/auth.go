package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"eventify-cli/model"
	"eventify-cli/store"
)

var validate = validator.New()

const (
	regFieldFirstName = iota
	regFieldLastName
	regFieldEmail
	regFieldPassword
	regFieldPhone
	regFieldCity
	regFieldAddress
	regFieldGender
	regFieldCount
)

var regFieldNames = map[int]string{
	regFieldFirstName: "First name",
	regFieldLastName:  "Last name",
	regFieldEmail:     "Email",
	regFieldPassword:  "Password",
	regFieldPhone:     "Phone number",
	regFieldCity:      "City",
	regFieldAddress:   "Address",
}

func newRegisterInputs() []textinput.Model {
	inputs := make([]textinput.Model, regFieldGender)
	for field := range inputs {
		ti := textinput.New()
		ti.Placeholder = regFieldNames[field]
		ti.CharLimit = 120
		if field == regFieldPassword {
			ti.EchoMode = textinput.EchoPassword
		}
		inputs[field] = ti
	}
	return inputs
}

func (m appModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.authBusy {
		return m, nil, true
	}
	switch msg.String() {
	case "esc":
		back, cmd := m.goBack()
		return back, cmd, true
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.passwordInput.Blur()
			return m, m.emailInput.Focus(), true
		}
		m.emailInput.Blur()
		return m, m.passwordInput.Focus(), true
	case "ctrl+r":
		m.authErr = ""
		m.regFocus = 0
		m.regErrors = nil
		m.regInputs[0].Focus()
		for i := 1; i < len(m.regInputs); i++ {
			m.regInputs[i].Blur()
		}
		m.state = stateRegister
		return m, nil, true
	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.emailInput.Blur()
			return m, m.passwordInput.Focus(), true
		}
		m.authBusy = true
		m.authErr = ""
		return m, tea.Batch(m.loginCmd(), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.authBusy {
		return m, nil, true
	}
	switch msg.String() {
	case "esc":
		m.state = stateLogin
		return m, nil, true
	case "tab", "down":
		return m.focusRegisterField((m.regFocus + 1) % regFieldCount), nil, true
	case "shift+tab", "up":
		return m.focusRegisterField((m.regFocus + regFieldCount - 1) % regFieldCount), nil, true
	case "left", "right":
		if m.regFocus == regFieldGender {
			if m.regGender == "male" {
				m.regGender = "female"
			} else {
				m.regGender = "male"
			}
			return m, nil, true
		}
	case "enter":
		if m.regFocus < regFieldGender {
			return m.focusRegisterField(m.regFocus + 1), nil, true
		}
		registration := m.registration()
		if errs := validateRegistration(registration); len(errs) > 0 {
			m.regErrors = errs
			return m, nil, true
		}
		m.regErrors = nil
		m.authBusy = true
		m.authErr = ""
		return m, tea.Batch(m.registerCmd(registration), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) focusRegisterField(field int) appModel {
	m.regFocus = field
	for i := range m.regInputs {
		if i == field {
			m.regInputs[i].Focus()
		} else {
			m.regInputs[i].Blur()
		}
	}
	return m
}

func (m appModel) updateRegisterInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.regFocus >= regFieldGender {
		return m, nil
	}
	var cmd tea.Cmd
	m.regInputs[m.regFocus], cmd = m.regInputs[m.regFocus].Update(msg)
	return m, cmd
}

func (m appModel) registration() model.Registration {
	value := func(field int) string {
		return strings.TrimSpace(m.regInputs[field].Value())
	}
	return model.Registration{
		FirstName:   value(regFieldFirstName),
		LastName:    value(regFieldLastName),
		Email:       value(regFieldEmail),
		Password:    m.regInputs[regFieldPassword].Value(),
		PhoneNumber: value(regFieldPhone),
		City:        value(regFieldCity),
		Address:     value(regFieldAddress),
		Gender:      m.regGender,
	}
}

// validateRegistration maps validator failures to per-field messages keyed by
// the struct field name.
func validateRegistration(registration model.Registration) map[string]string {
	err := validate.Struct(registration)
	if err == nil {
		return nil
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}
	messages := map[string]string{}
	for _, fieldErr := range invalid {
		switch fieldErr.Tag() {
		case "required":
			messages[fieldErr.Field()] = "This field is required"
		case "email":
			messages[fieldErr.Field()] = "Enter a valid email address"
		case "min":
			messages[fieldErr.Field()] = fmt.Sprintf("Must be at least %s characters", fieldErr.Param())
		case "oneof":
			messages[fieldErr.Field()] = "Choose one of: " + fieldErr.Param()
		default:
			messages[fieldErr.Field()] = "Invalid value"
		}
	}
	return messages
}

func (m *appModel) loginCmd() tea.Cmd {
	client := m.client
	email := m.emailInput.Value()
	password := m.passwordInput.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		session, err := client.Login(ctx, email, password)
		if err != nil {
			return loginMsg{err: err}
		}
		if err := store.SaveToken(session.AccessToken); err != nil {
			return loginMsg{err: err}
		}
		profile, err := client.GetUserProfile(ctx)
		if err != nil {
			// The session is established; the role is a nicety.
			return loginMsg{}
		}
		return loginMsg{role: profile.Role}
	}
}

func (m *appModel) registerCmd(registration model.Registration) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return registerMsg{err: client.Register(ctx, registration)}
	}
}
