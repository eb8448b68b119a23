package shell

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// PrintAccounts writes accounts as a table, marking activeID with "*".
func PrintAccounts(w io.Writer, accounts []models.Account, activeID string) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No accounts")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tID\tEMAIL\tNOTE\tPLAN\tPLAN END")
	for _, a := range accounts {
		mark := " "
		if a.ID == activeID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", mark, a.ID, a.Email, a.Note, deref(a.PlanName), deref(a.PlanEnd))
	}
	_ = tw.Flush()
}

// PrintServers writes MCP server entries as a table.
func PrintServers(w io.Writer, servers []models.ServerConfig) {
	if len(servers) == 0 {
		fmt.Fprintln(w, "No MCP entries")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOMMAND\tENABLED")
	for _, srv := range servers {
		enabled := "no"
		if srv.Enabled {
			enabled = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", srv.ID, srv.Name, srv.Command, enabled)
	}
	_ = tw.Flush()
}

// PrintRules writes rules as a table of id and prompt preview.
func PrintRules(w io.Writer, rules []models.RuleConfig) {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No rules")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROMPT")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\n", r.ID, r.Preview())
	}
	_ = tw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
