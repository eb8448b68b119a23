package shell

import (
	"fmt"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/service"
)

func (s *Shell) execServers(args []string) error {
	if len(args) == 0 {
		return usage("mcp open|save|saveas|backup|list|add|edit|delete")
	}
	switch args[0] {
	case "open":
		if len(args) != 2 {
			return usage("mcp open <file>")
		}
		if err := s.session.OpenServers(args[1]); err != nil {
			return err
		}
		s.listServers()
	case "save":
		if err := s.session.SaveServers(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Saved %s\n", s.session.ServersPath())
	case "saveas":
		if len(args) != 2 {
			return usage("mcp saveas <file>")
		}
		if err := s.session.SaveServersAs(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Saved %s\n", args[1])
	case "backup":
		if len(args) != 2 {
			return usage("mcp backup <file>")
		}
		if len(s.session.Servers()) == 0 && !s.confirm("The MCP list is empty. Back up an empty list?") {
			return nil
		}
		if err := s.session.BackupServers(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Backup written to %s\n", args[1])
	case "list":
		s.listServers()
	case "add":
		return s.editServer("")
	case "edit":
		if len(args) != 2 {
			return usage("mcp edit <id>")
		}
		return s.editServer(args[1])
	case "delete":
		if len(args) < 2 {
			return usage("mcp delete <id>...")
		}
		if !s.confirm(fmt.Sprintf("Delete %d MCP entr(ies)?", len(args)-1)) {
			return nil
		}
		fmt.Fprintf(s.out, "Deleted %d MCP entr(ies)\n", s.session.DeleteServers(args[1:]))
	default:
		return usage("mcp open|save|saveas|backup|list|add|edit|delete")
	}
	return nil
}

func (s *Shell) listServers() {
	PrintServers(s.out, s.session.Servers())
}

// editServer prompts for every field. An empty originalID creates a new entry.
func (s *Shell) editServer(originalID string) error {
	cur := models.ServerConfig{ID: service.NewID(), Enabled: true}
	if originalID != "" {
		var err error
		if cur, err = s.session.Server(originalID); err != nil {
			return err
		}
	}

	f := &form{s: s}
	next := models.ServerConfig{
		ID:      f.ask("ID", cur.ID),
		Name:    f.ask("Name", cur.Name),
		Command: f.ask("Command", cur.Command),
		Args:    service.ParseArgs(f.ask("Args (space separated)", service.FormatArgs(cur.Args))),
		Env:     service.ParseEnv(f.askLines("Env (KEY=VALUE per line)", service.FormatEnv(cur.Env))),
		Enabled: f.askBool("Enabled", cur.Enabled),
	}
	if f.err != nil {
		return f.err
	}
	if err := s.session.PutServer(originalID, next); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "MCP entry %s saved in session (use 'mcp save' to write the file)\n", next.ID)
	return nil
}

func (s *Shell) execRules(args []string) error {
	if len(args) == 0 {
		return usage("rules open|save|saveas|backup|list|add|edit|delete")
	}
	switch args[0] {
	case "open":
		if len(args) != 2 {
			return usage("rules open <file>")
		}
		if err := s.session.OpenRules(args[1]); err != nil {
			return err
		}
		s.listRules()
	case "save":
		if err := s.session.SaveRules(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Saved %s\n", s.session.RulesPath())
	case "saveas":
		if len(args) != 2 {
			return usage("rules saveas <file>")
		}
		if err := s.session.SaveRulesAs(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Saved %s\n", args[1])
	case "backup":
		if len(args) != 2 {
			return usage("rules backup <file>")
		}
		if len(s.session.Rules()) == 0 && !s.confirm("The rules list is empty. Back up an empty list?") {
			return nil
		}
		if err := s.session.BackupRules(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Backup written to %s\n", args[1])
	case "list":
		s.listRules()
	case "add":
		return s.editRule("")
	case "edit":
		if len(args) != 2 {
			return usage("rules edit <id>")
		}
		return s.editRule(args[1])
	case "delete":
		if len(args) < 2 {
			return usage("rules delete <id>...")
		}
		if !s.confirm(fmt.Sprintf("Delete %d rule(s)?", len(args)-1)) {
			return nil
		}
		fmt.Fprintf(s.out, "Deleted %d rule(s)\n", s.session.DeleteRules(args[1:]))
	default:
		return usage("rules open|save|saveas|backup|list|add|edit|delete")
	}
	return nil
}

func (s *Shell) listRules() {
	PrintRules(s.out, s.session.Rules())
}

func (s *Shell) editRule(originalID string) error {
	cur := models.RuleConfig{ID: service.NewID()}
	if originalID != "" {
		var err error
		if cur, err = s.session.Rule(originalID); err != nil {
			return err
		}
	}

	f := &form{s: s}
	next := models.RuleConfig{
		ID:     f.ask("ID", cur.ID),
		Prompt: service.NormalizePrompt(f.askLines("Prompt", cur.Prompt)),
	}
	if f.err != nil {
		return f.err
	}
	if err := s.session.PutRule(originalID, next); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Rule %s saved in session (use 'rules save' to write the file)\n", next.ID)
	return nil
}
