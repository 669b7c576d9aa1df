// ABOUTME: Interactive prompts for values omitted from the command line
// ABOUTME: Uses huh password inputs when stdin is a terminal

package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// errNoTTY is returned when a prompt is needed but stdin is not interactive
var errNoTTY = errors.New("password required (use --password when not running in a terminal)")

// promptPassword asks for a password with masked input
func promptPassword(title string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errNoTTY
	}

	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("password cannot be empty")
			}
			return nil
		}).
		Value(&password).
		Run()
	if err != nil {
		return "", err
	}
	return password, nil
}

// resolvePassword returns the flag value or prompts for one
func resolvePassword(flagValue, title string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return promptPassword(title)
}
