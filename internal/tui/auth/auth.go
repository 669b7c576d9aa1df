// ABOUTME: Signup and login forms as a bubbletea model
// ABOUTME: Uses huh forms inside a two-tab view and emits submit messages

package auth

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/icons"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/styles"
)

// Tab selects which form is visible
type Tab int

const (
	TabLogin Tab = iota
	TabSignup
)

// String returns the tab label
func (t Tab) String() string {
	if t == TabSignup {
		return "Sign up"
	}
	return "Login"
}

// SwitchKey toggles between the signup and login tabs
const SwitchKey = "ctrl+t"

// SignupSubmittedMsg carries the raw signup form values
type SignupSubmittedMsg struct {
	Name     string
	Email    string
	Password string
}

// LoginSubmittedMsg carries the raw login form values
type LoginSubmittedMsg struct {
	Email    string
	Password string
}

// Auth is the auth view: one huh form per tab
type Auth struct {
	tab   Tab
	form  *huh.Form
	width int

	// Form field values (bound to huh inputs)
	name     string
	email    string
	password string
}

// createTheme returns a huh theme using the shared palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Accent)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(styles.Text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

// New creates the auth view on the login tab
func New() *Auth {
	a := &Auth{tab: TabLogin}
	a.form = a.buildForm()
	return a
}

func (a *Auth) buildForm() *huh.Form {
	if a.tab == TabSignup {
		return a.signupForm()
	}
	return a.loginForm()
}

func (a *Auth) signupForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Ada Lovelace").
				CharLimit(100).
				Value(&a.name),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(254).
				Value(&a.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&a.password),
		).Title("Create an account").
			Description("Fill in the fields and press Enter to submit"),
	).WithTheme(createTheme()).WithShowHelp(false)
}

func (a *Auth) loginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(254).
				Value(&a.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&a.password),
		).Title("Welcome back").
			Description("Log in to read, bookmark, and study"),
	).WithTheme(createTheme()).WithShowHelp(false)
}

// Tab returns the visible tab
func (a *Auth) Tab() Tab {
	return a.tab
}

// SwitchTab shows the given tab, keeping any typed values
func (a *Auth) SwitchTab(tab Tab) tea.Cmd {
	a.tab = tab
	a.form = a.buildForm()
	return a.form.Init()
}

// Reset clears all fields and shows the given tab
func (a *Auth) Reset(tab Tab) tea.Cmd {
	a.name, a.email, a.password = "", "", ""
	return a.SwitchTab(tab)
}

// SetWidth sets the form width
func (a *Auth) SetWidth(width int) {
	a.width = width
	if width > 0 {
		a.form = a.form.WithWidth(min(width, 72))
	}
}

// Init implements tea.Model
func (a *Auth) Init() tea.Cmd {
	return a.form.Init()
}

// Update implements tea.Model
func (a *Auth) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == SwitchKey {
		if a.tab == TabLogin {
			return a, a.SwitchTab(TabSignup)
		}
		return a, a.SwitchTab(TabLogin)
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		// Rebuild so the values stay editable if the request fails
		submit := a.submit()
		a.form = a.buildForm()
		return a, tea.Batch(a.form.Init(), func() tea.Msg { return submit })
	case huh.StateAborted:
		a.form = a.buildForm()
		return a, a.form.Init()
	}

	return a, cmd
}

// submit builds the message for the current tab's values
func (a *Auth) submit() tea.Msg {
	if a.tab == TabSignup {
		return SignupSubmittedMsg{Name: a.name, Email: a.email, Password: a.password}
	}
	return LoginSubmittedMsg{Email: a.email, Password: a.password}
}

// View implements tea.Model
func (a *Auth) View() string {
	var sb strings.Builder

	sb.WriteString(a.renderTabs())
	sb.WriteString("\n\n")
	sb.WriteString(a.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("Enter next/submit · " + SwitchKey + " switch to " + a.other().String()))

	return sb.String()
}

func (a *Auth) other() Tab {
	if a.tab == TabLogin {
		return TabSignup
	}
	return TabLogin
}

// renderTabs renders the signup/login tab switcher
func (a *Auth) renderTabs() string {
	title := styles.Title.Render(icons.User.String() + " Account")
	tabs := styles.Tab(TabSignup.String(), a.tab == TabSignup) + " " +
		styles.Tab(TabLogin.String(), a.tab == TabLogin)
	return lipgloss.JoinVertical(lipgloss.Left, title, tabs)
}
