package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/igt/internal/host"
)

var statusOpts struct {
	output string
}

// StatusView is the printable form of the daemon's status.
type StatusView struct {
	HostAlive    bool    `json:"host_alive" yaml:"host_alive"`
	Source       string  `json:"source,omitempty" yaml:"source,omitempty"`
	SessionID    string  `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Started      string  `json:"started,omitempty" yaml:"started,omitempty"`
	Visible      bool    `json:"visible" yaml:"visible"`
	Mode         string  `json:"mode" yaml:"mode"`
	Elapsed      float64 `json:"elapsed" yaml:"elapsed"`
	Text         string  `json:"text,omitempty" yaml:"text,omitempty"`
	X            float64 `json:"x" yaml:"x"`
	Y            float64 `json:"y" yaml:"y"`
	Notification string  `json:"notification,omitempty" yaml:"notification,omitempty"`
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the overlay status",
	Long: `Show what igtd is currently displaying.

Output formats:
  text    Human readable summary (default)
  json    The full status as JSON
  yaml    The full status as YAML
  waybar  Waybar custom module JSON:

  "custom/igt": {
    "exec": "igt status -o waybar",
    "interval": 1,
    "return-type": "json",
    "on-click": "igt toggle"
  }`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusOpts.output, "output", "o", "text",
		"Output format: text, json, yaml, waybar")
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := connect()
	if err != nil {
		return err
	}

	st, err := client.Status()
	if err != nil {
		if statusOpts.output == "waybar" {
			return writeJSON(os.Stdout, WaybarStatus{Alt: "error", Class: "error"})
		}
		return err
	}

	return printStatus(os.Stdout, st, statusOpts.output, term.IsTerminal(int(os.Stdout.Fd())))
}

// printStatus writes st in format. styled enables colours for text output.
func printStatus(w io.Writer, st host.Status, format string, styled bool) error {
	switch format {
	case "text", "":
		_, err := io.WriteString(w, renderStatus(newStatusView(st), styled))
		return err
	case "json":
		return writeJSON(w, newStatusView(st))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newStatusView(st)); err != nil {
			return err
		}
		return enc.Close()
	case "waybar":
		return writeJSON(w, waybarStatus(st))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func newStatusView(st host.Status) StatusView {
	v := StatusView{
		HostAlive:    st.HostAlive,
		Source:       st.Source,
		SessionID:    st.SessionID,
		Visible:      st.ShowOverlay,
		Mode:         statusMode(st),
		Elapsed:      st.Elapsed,
		Text:         st.Text,
		X:            st.X,
		Y:            st.Y,
		Notification: st.Notification,
	}
	if !st.SessionStarted.IsZero() {
		v.Started = st.SessionStarted.Format(time.RFC3339)
	}
	return v
}

func statusMode(st host.Status) string {
	switch {
	case st.Dragging:
		return "drag"
	case st.MoveMode:
		return "move"
	default:
		return "run"
	}
}

// waybarStatus maps the status onto a bar module. The class is one of
// idle, hidden, move or running.
func waybarStatus(st host.Status) WaybarStatus {
	if !st.HostAlive {
		return WaybarStatus{Alt: "idle", Class: "idle", Tooltip: "No host attached"}
	}

	class := "running"
	switch {
	case st.MoveMode:
		class = "move"
	case !st.ShowOverlay:
		class = "hidden"
	}

	tooltip := fmt.Sprintf("Source: %s", st.Source)
	if !st.SessionStarted.IsZero() {
		tooltip += "\nSession started " + humanize.Time(st.SessionStarted)
	}
	if st.Notification != "" {
		tooltip += "\n" + st.Notification
	}

	return WaybarStatus{Text: st.Text, Alt: class, Tooltip: tooltip, Class: class}
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	timerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f8f8f2"))
	moveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#80ffea"))
)

// renderStatus formats v as aligned "label: value" lines.
func renderStatus(v StatusView, styled bool) string {
	type row struct{ label, value string }

	var rows []row
	if !v.HostAlive {
		rows = append(rows, row{"Host", "none"})
	} else {
		rows = append(rows, row{"Host", v.Source})
		if v.Started != "" {
			if t, err := time.Parse(time.RFC3339, v.Started); err == nil {
				rows = append(rows, row{"Session", fmt.Sprintf("%s (started %s)", v.SessionID, humanize.Time(t))})
			}
		}
		rows = append(rows, row{"Timer", v.Text})
	}
	rows = append(rows,
		row{"Visible", fmt.Sprintf("%t", v.Visible)},
		row{"Mode", v.Mode},
		row{"Position", fmt.Sprintf("%.0f, %.0f", v.X, v.Y)},
	)
	if v.Notification != "" {
		rows = append(rows, row{"Message", v.Notification})
	}

	var b strings.Builder
	for _, r := range rows {
		label := fmt.Sprintf("%-9s", r.label+":")
		value := r.value
		if styled {
			label = labelStyle.Render(label)
			switch {
			case r.label == "Timer" && v.Mode != "run":
				value = moveStyle.Render(value)
			case r.label == "Timer":
				value = timerStyle.Render(value)
			default:
				value = valueStyle.Render(value)
			}
		}
		fmt.Fprintf(&b, "%s %s\n", label, value)
	}
	return b.String()
}
