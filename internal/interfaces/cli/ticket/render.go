package ticket

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/orris-inc/supportdesk/sdk/support"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// StatusLabel turns IN_PROGRESS into "In Progress".
func StatusLabel(status string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(status), "_", " "))
}

func validFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (table, json, yaml)", format)
	}
}

// RenderTickets writes tickets in the requested format.
func RenderTickets(w io.Writer, tickets []support.Ticket, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tickets)
	case FormatYAML:
		return writeYAML(w, tickets)
	case FormatTable:
		if len(tickets) == 0 {
			_, err := fmt.Fprintln(w, "No tickets found.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tCOMMENTS")
		for _, t := range tickets {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", t.ID, t.Title, t.Category, StatusLabel(t.Status), len(t.Comments))
		}
		return tw.Flush()
	default:
		return validFormat(format)
	}
}

// RenderTicket writes one ticket with its description and comments.
func RenderTicket(w io.Writer, t *support.Ticket, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, t)
	case FormatYAML:
		return writeYAML(w, t)
	case FormatTable:
		fmt.Fprintf(w, "#%d %s\n", t.ID, t.Title)
		fmt.Fprintf(w, "Category: %s\n", t.Category)
		fmt.Fprintf(w, "Status:   %s\n", StatusLabel(t.Status))
		fmt.Fprintf(w, "\n%s\n", t.Description)
		if len(t.Comments) > 0 {
			fmt.Fprintln(w, "\nComments:")
			for _, c := range t.Comments {
				fmt.Fprintf(w, "  - %s\n", c)
			}
		}
		return nil
	default:
		return validFormat(format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
