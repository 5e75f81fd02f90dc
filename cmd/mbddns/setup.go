package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	ddns "github.com/Travis-Britz/mbddns"
	"golang.org/x/term"
	"sigs.k8s.io/yaml"
)

// runSetup asks for the config values and writes them to a new file at path
// that only the owner can read.
func runSetup(path string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	logger.Debug("running setup", "path", path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%q already exists; remove it first to write a new config", path)
	}

	in := bufio.NewReader(stdin)
	var cfg ddns.Config
	var err error
	if cfg.Domain, err = prompt(in, stdout, "Domain to update: "); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.KeyID, err = prompt(in, stdout, "API key ID: "); err != nil {
		return err
	}
	if cfg.Secret, err = promptSecret(stdin, in, stdout, "API secret: "); err != nil {
		return err
	}
	if cfg.KeyID == "" || cfg.Secret == "" {
		return errors.New("API key ID and secret cannot be empty")
	}
	if cfg.IPv4, err = promptBool(in, stdout, "Update the IPv4 record? [Y/n]: "); err != nil {
		return err
	}
	if cfg.IPv6, err = promptBool(in, stdout, "Update the IPv6 record? [Y/n]: "); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	logger.Debug("creating config file", "path", path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("unable to write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to write %q: %w", path, err)
	}
	fmt.Fprintf(stdout, "Config written to %q\n", path)
	return nil
}

func prompt(in *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("error reading from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo when stdin is a terminal.
func promptSecret(stdin io.Reader, in *bufio.Reader, out io.Writer, question string) (string, error) {
	f, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(in, out, question)
	}
	fmt.Fprint(out, question)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("error reading from stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func promptBool(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	answer, err := prompt(in, out, question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "", "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected yes or no; got %q", answer)
}
