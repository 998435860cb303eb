package render

import (
	"encoding/json"
	"fmt"
	"io"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/deploytrace/deploytrace/internal/timeline"
)

// Output formats accepted by both commands.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Timeline writes the event list in the requested format. Text mode is a
// plain chronological table; json and yaml serialize the records as-is.
func Timeline(w io.Writer, tl timeline.Timeline, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tl)
	case FormatYAML:
		return writeYAML(w, tl)
	case FormatText:
		return timelineTable(w, tl)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Summary writes the derived summary in the requested format. Text mode is
// the narrative report.
func Summary(w io.Writer, s timeline.Summary, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	case FormatText:
		return narrative(w, s)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	data, err := sigsyaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func timelineTable(w io.Writer, tl timeline.Timeline) error {
	if len(tl) == 0 {
		_, err := fmt.Fprintln(w, dimStyle.Render("no events observed"))
		return err
	}

	fmt.Fprintf(w, "%-20s  %-17s  %s\n",
		sectionStyle.Render("TIMESTAMP"),
		sectionStyle.Render("MILESTONE"),
		sectionStyle.Render("EVENT"))
	for _, r := range tl {
		ts := formatTime(r.Timestamp)
		if r.PresenceOnly {
			ts = dimStyle.Render("(presence only)")
		}
		fmt.Fprintf(w, "%-20s  %-17s  %s\n", ts, r.Category, r.Name)
	}
	return nil
}
