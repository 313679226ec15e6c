package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

// GetWithDefault is GetSimpleText showing def in brackets; an empty answer
// keeps def.
func GetWithDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	v, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// GetChoice lists options numbered from 1 and returns the chosen option.
// The answer may be a number or an option name. Anything else is returned
// verbatim so the caller's validation can report it.
func GetChoice(reader *bufio.Reader, prompt string, options []string, def string, w io.Writer) (string, error) {
	for i, o := range options {
		if _, err := fmt.Fprintf(w, "  %d) %s\n", i+1, o); err != nil {
			return "", err
		}
	}
	v, err := GetWithDefault(reader, prompt, def, w)
	if err != nil {
		return "", err
	}
	if n, convErr := strconv.Atoi(v); convErr == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, nil
		}
	}
	return v, nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line.
// If def is non-empty and the first line is empty, def is kept.
func GetMultiline(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	hint := "(press Enter on an empty line to finish)"
	if def != "" {
		hint = "(empty line keeps the current text)\n  " + strings.ReplaceAll(def, "\n", "\n  ")
	}
	if _, err := fmt.Fprint(w, prompt+"\n"+hint+"\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 && def == "" {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	if len(lines) == 0 {
		return def, nil
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// Confirm asks a yes/no question; only "y" or "yes" count as yes.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	if _, err := fmt.Fprint(w, prompt+" [y/N]: "); err != nil {
		return false, err
	}
	v, err := readLine(reader)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
