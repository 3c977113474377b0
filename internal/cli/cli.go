// Package cli holds the interactive helpers of the command line tool.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrPasswordMismatch is returned when the confirmation differs.
var ErrPasswordMismatch = errors.New("passwords do not match")

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// YesNoPrompt asks yes/no questions using a question.
func YesNoPrompt(question string, def bool) bool {
	return yesNo(os.Stdin, os.Stdout, question, def)
}

func yesNo(in io.Reader, out io.Writer, question string, def bool) bool {
	choices := "Yes/no"
	if !def {
		choices = "yes/No"
	}

	r := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "%s (%s) ", aurora.Bold(question), aurora.Underline(choices))
		s, err := r.ReadString('\n')
		s = strings.ToLower(strings.TrimSpace(s))
		switch {
		case s == "y" || s == "yes":
			return true
		case s == "n" || s == "no":
			return false
		case s == "" || err != nil:
			return def
		}
	}
}

// PasswordPrompt reads a masked password from the terminal. With confirm set
// the password is asked for twice.
func PasswordPrompt(label string, confirm bool) ([]byte, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Mask:     '*',
		Validate: validatePassword,
	}
	password, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	if confirm {
		prompt.Label = "Repeat " + strings.ToLower(label[:1]) + label[1:]
		repeated, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		if repeated != password {
			return nil, ErrPasswordMismatch
		}
	}
	return []byte(password), nil
}

// ReadPassword reads a password from the first line of r, as used when the
// password is piped in or read from a file.
func ReadPassword(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	line = []byte(strings.TrimRight(string(line), "\r\n"))
	if err := validatePassword(string(line)); err != nil {
		return nil, err
	}
	return line, nil
}

func validatePassword(s string) error {
	if len(s) == 0 {
		return errors.New("password must not be empty")
	}
	return nil
}
