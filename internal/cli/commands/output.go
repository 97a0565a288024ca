package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"

	"github.com/samber/lo"
)

var levelMarks = map[dashboard.Level]string{
	dashboard.Success: "✓",
	dashboard.Warning: "!",
	dashboard.Error:   "✗",
}

// printOutcome prints an action outcome and turns an error outcome into an
// error so the command exits non-zero
func printOutcome(w io.Writer, o dashboard.Outcome) error {
	fmt.Fprintf(w, "%s %s\n", levelMarks[o.Level], o.Text())
	for _, d := range o.Details {
		fmt.Fprintf(w, "  - %s\n", d)
	}
	if !o.OK() {
		return errors.ActionFailed(o.Action.String(), o.Text())
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// checkFormat rejects output formats a command does not support
func checkFormat(format string, supported ...string) error {
	if !lo.Contains(supported, format) {
		return errors.InvalidInput(format, strings.Join(supported, ", "))
	}
	return nil
}

// confirm asks a yes/no question on in; anything but y/yes is a no
func confirm(in io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
