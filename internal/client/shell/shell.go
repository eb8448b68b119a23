// Package shell implements the interactive keeper prompt.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/AccountKeeper/internal/machinecode"
	"github.com/atinyakov/AccountKeeper/internal/remote"
	"github.com/atinyakov/AccountKeeper/internal/service"
)

const helpText = `Available commands:
  accounts                      list accounts (* marks the active one)
  import <file>                 merge accounts from a legacy JSON file
  export <file>                 write all accounts to a file
  delete <id>...                delete accounts
  note <id>                     edit the note of an account
  switch <id>                   make an account active
  mcp open|save|saveas|backup|list|add|edit|delete [args]
  rules open|save|saveas|backup|list|add|edit|delete [args]
  remote user|usage             query the remote account API
  machine-code backup|restore [os]
  help, exit

In edit forms an empty answer keeps the current value and "-" clears it.`

// Shell reads commands line by line and runs them against a session.
type Shell struct {
	session *service.Session
	remote  *remote.Client
	in      *bufio.Scanner
	out     io.Writer
}

// maxLineSize bounds a single input line; long rule prompts fit easily.
const maxLineSize = 4 << 20

// New creates a Shell reading from in and writing to out.
func New(session *service.Session, in io.Reader, out io.Writer) *Shell {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Shell{
		session: session,
		remote:  remote.NewClient(),
		in:      scanner,
		out:     out,
	}
}

// Run loops until "exit" or end of input.
func (s *Shell) Run() {
	for {
		fmt.Fprint(s.out, "keeper> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			if err := s.in.Err(); err != nil {
				fmt.Fprintln(s.out, "Error: read input:", err)
			}
			return
		}
		args := strings.Fields(s.in.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			fmt.Fprintln(s.out, "Bye")
			return
		}
		if err := s.exec(args); err != nil {
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
}

func (s *Shell) exec(args []string) error {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "accounts", "list":
		s.listAccounts()
	case "import":
		if len(args) != 2 {
			return usage("import <file>")
		}
		added, err := s.session.ImportAccounts(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Imported %d new account(s)\n", added)
	case "export":
		if len(args) != 2 {
			return usage("export <file>")
		}
		if err := s.session.ExportAccounts(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Exported %d account(s) to %s\n", len(s.session.Accounts()), args[1])
	case "delete":
		if len(args) < 2 {
			return usage("delete <id>...")
		}
		if !s.confirm(fmt.Sprintf("Delete %d account(s)?", len(args)-1)) {
			return nil
		}
		removed, err := s.session.DeleteAccounts(args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Deleted %d account(s)\n", removed)
	case "note":
		if len(args) != 2 {
			return usage("note <id>")
		}
		return s.editNote(args[1])
	case "switch":
		if len(args) != 2 {
			return usage("switch <id>")
		}
		if err := s.session.SwitchAccount(args[1]); err != nil {
			return err
		}
		acc, _ := s.session.Account(args[1])
		fmt.Fprintf(s.out, "Switched to %s\n", acc.Email)
	case "mcp":
		return s.execServers(args[1:])
	case "rules":
		return s.execRules(args[1:])
	case "remote":
		return s.execRemote(args[1:])
	case "machine-code":
		return s.execMachineCode(args[1:])
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func (s *Shell) listAccounts() {
	PrintAccounts(s.out, s.session.Accounts(), s.session.ActiveAccountID())
}

func (s *Shell) editNote(id string) error {
	acc, err := s.session.Account(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Email: %s\n", acc.Email)
	note, err := s.ask("Note", acc.Note)
	if err != nil {
		return err
	}
	if err := s.session.SetAccountNote(id, note); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Account updated")
	return nil
}

func (s *Shell) execRemote(args []string) error {
	if len(args) != 1 {
		return usage("remote user|usage")
	}
	ctx := context.Background()
	switch args[0] {
	case "user":
		_, err := s.remote.FetchCurrentUser(ctx, "")
		return err
	case "usage":
		_, err := s.remote.FetchCurrentPeriodUsage(ctx, "")
		return err
	}
	return usage("remote user|usage")
}

func (s *Shell) execMachineCode(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("machine-code backup|restore [os]")
	}
	osName := ""
	if len(args) == 2 {
		osName = args[1]
	}
	switch args[0] {
	case "backup":
		return machinecode.Backup(osName)
	case "restore":
		return machinecode.Restore(osName)
	}
	return usage("machine-code backup|restore [os]")
}

func usage(text string) error {
	return fmt.Errorf("usage: %s", text)
}
