// ABOUTME: Account commands for the newsxstudy CLI
// ABOUTME: Implements signup, login, and logout against the auth endpoints

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/newsxstudy/newsxstudy/cli/internal/client"
	"github.com/spf13/cobra"
)

// Notice texts shared with the TUI
const (
	noticeSignupOK     = "Signup successful"
	noticeSignupFailed = "Signup failed"
	noticeLoginOK      = "Login successful"
	noticeLoginFailed  = "Login failed"
	noticeLoggedOut    = "Logged out"
)

var (
	signupName     string
	signupEmail    string
	signupPassword string

	loginEmail    string
	loginPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long:  `Register a new account. The password is prompted for when --password is omitted.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		password, err := resolvePassword(signupPassword, "Password")
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(1)
		}

		exitWith(runSignup(ctx, os.Stdout, signupName, signupEmail, password))
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Long:  `Log in with email and password. The returned token is saved in the config directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		password, err := resolvePassword(loginPassword, "Password")
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(1)
		}

		exitWith(runLogin(ctx, os.Stdout, loginEmail, password))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runLogout(os.Stdout))
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupName, "name", "", "Display name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password (prompted when omitted)")
	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

// runSignup registers an account and returns exit code
func runSignup(ctx context.Context, w io.Writer, name, email, password string) int {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if name == "" || email == "" || password == "" {
		printError(w, errors.New("name, email and password are required"))
		return 1
	}

	c := newClient(slog.Default())
	resp, err := c.Register(ctx, name, email, password)
	if err != nil {
		printNotice(w, client.ServerMessage(err, noticeSignupFailed))
		slog.Debug("signup failed", "error", err)
		return 2
	}

	msg := noticeSignupOK
	if resp.Message != "" {
		msg = resp.Message
	}
	printNotice(w, msg)
	return 0
}

// runLogin authenticates, persists the token and returns exit code
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		printError(w, errors.New("email and password are required"))
		return 1
	}

	c := newClient(slog.Default())
	resp, err := c.Login(ctx, email, password)
	if err != nil {
		printNotice(w, client.ServerMessage(err, noticeLoginFailed))
		slog.Debug("login failed", "error", err)
		return 2
	}

	if err := newSessionStore().Save(resp.Token); err != nil {
		printError(w, fmt.Errorf("saving session: %w", err))
		return 1
	}

	printNotice(w, noticeLoginOK)
	return 0
}

// runLogout clears the stored session and returns exit code
func runLogout(w io.Writer) int {
	if err := newSessionStore().Clear(); err != nil {
		printError(w, fmt.Errorf("clearing session: %w", err))
		return 1
	}
	printNotice(w, noticeLoggedOut)
	return 0
}
