// Package ui provides colored console output for the voice agent gateway.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// ══════════════════════════════════════════════════════════════════════════════
// STARTUP BANNER
// ══════════════════════════════════════════════════════════════════════════════

// PrintBanner displays the startup banner.
func PrintBanner(version string) {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)
	hiCyan := color.New(color.FgHiCyan)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	out := color.Output

	fmt.Fprintln(out)
	cyan.Fprintln(out, "╔══════════════════════════════════════════════════════╗")

	cyan.Fprint(out, "║  ")
	hiCyan.Fprint(out, "🎙  VOICE AGENT")
	magenta.Fprint(out, " GATEWAY")
	dim.Fprint(out, "                              ")
	cyan.Fprintln(out, "║")

	cyan.Fprintln(out, "╠══════════════════════════════════════════════════════╣")

	cyan.Fprint(out, "║  ")
	white.Fprintf(out, "%-12s", "vapi")
	dim.Fprint(out, "│ ")
	white.Fprintf(out, "%-12s", "retell")
	dim.Fprint(out, "│ ")
	white.Fprintf(out, "%-22s", version)
	cyan.Fprintln(out, "║")

	cyan.Fprintln(out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintln(out)
}
