// Command hashpw prompts for a password without echo and prints its bcrypt
// hash, suitable for ADMIN_PASSWORD_HASH.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BangaloreConnect/bc/internal/services"
	"golang.org/x/term"
)

var readPassword = term.ReadPassword

func main() {
	if err := run(os.Stderr, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
}

func run(prompt, out io.Writer) error {
	first, err := ask(prompt, "Password: ")
	if err != nil {
		return err
	}
	if len(first) == 0 {
		return errors.New("password is empty")
	}
	second, err := ask(prompt, "Repeat password: ")
	if err != nil {
		return err
	}
	if !bytes.Equal(first, second) {
		return errors.New("passwords do not match")
	}

	hash, err := services.HashPassword(string(first))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

func ask(w io.Writer, label string) ([]byte, error) {
	fmt.Fprint(w, label)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
