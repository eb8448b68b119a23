package shell

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// endOfText terminates multi-line input.
	endOfText = "."
	// clearValue as a single-line answer empties the field.
	clearValue = "-"
)

// errInputClosed aborts an edit when input ends or fails mid-form.
var errInputClosed = errors.New("input closed, edit discarded")

// readLine scans one line. It fails with the scanner error, or with
// errInputClosed at end of input.
func (s *Shell) readLine() (string, error) {
	if s.in.Scan() {
		return s.in.Text(), nil
	}
	if err := s.in.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return "", errInputClosed
}

// ask prints label and returns the trimmed answer. An empty answer keeps
// current and "-" clears it.
func (s *Shell) ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(s.out, "%s [%s, %q clears]: ", label, current, clearValue)
	} else {
		fmt.Fprintf(s.out, "%s: ", label)
	}
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	switch answer := strings.TrimSpace(line); answer {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	default:
		return answer, nil
	}
}

// askLines reads lines until a line holding only ".". An empty first line
// keeps current, an immediate "." clears it. End of input after at least
// one line finishes the text.
func (s *Shell) askLines(label, current string) (string, error) {
	fmt.Fprintf(s.out, "%s (finish with a single %q line", label, endOfText)
	if current != "" {
		fmt.Fprintf(s.out, "; empty first line keeps the current value, %q alone clears it", endOfText)
	}
	fmt.Fprintln(s.out, "):")

	var lines []string
	for {
		line, err := s.readLine()
		if errors.Is(err, errInputClosed) && len(lines) > 0 {
			break
		}
		if err != nil {
			return "", err
		}
		if len(lines) == 0 && strings.TrimSpace(line) == "" {
			return current, nil
		}
		if strings.TrimSpace(line) == endOfText {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// confirm asks a yes/no question; anything but y/yes is no.
func (s *Shell) confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N]: ", prompt)
	line, err := s.readLine()
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// askBool asks a yes/no question with a default.
func (s *Shell) askBool(label string, current bool) (bool, error) {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	fmt.Fprintf(s.out, "%s [%s]: ", label, hint)
	line, err := s.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return current, nil
	}
}

// form runs a sequence of prompts and stops asking after the first failure.
type form struct {
	s   *Shell
	err error
}

func (f *form) ask(label, current string) string {
	if f.err != nil {
		return ""
	}
	v, err := f.s.ask(label, current)
	f.err = err
	return v
}

func (f *form) askLines(label, current string) string {
	if f.err != nil {
		return ""
	}
	v, err := f.s.askLines(label, current)
	f.err = err
	return v
}

func (f *form) askBool(label string, current bool) bool {
	if f.err != nil {
		return false
	}
	v, err := f.s.askBool(label, current)
	f.err = err
	return v
}
