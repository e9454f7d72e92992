package ui

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
)

var (
	// Badge colors
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)

	// Text colors
	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)
	neonBlue    = color.New(color.FgHiCyan, color.Bold)

	// Method colors
	methodPOST = color.New(color.BgHiMagenta, color.FgBlack, color.Bold)
	methodGET  = color.New(color.BgHiCyan, color.FgBlack, color.Bold)
)

// maxDetailLen bounds upstream bodies echoed to the console.
const maxDetailLen = 120

// ══════════════════════════════════════════════════════════════════════════════
// PER-REQUEST BADGES
// ══════════════════════════════════════════════════════════════════════════════

// PrintAgentCreated logs a successful creation.
// Format: [201 CREATED] vapi agent created
func PrintAgentCreated(provider string, status int) {
	out := color.Output
	successBadge.Fprintf(out, " %d CREATED ", status)
	fmt.Fprint(out, " ")
	accentText.Fprint(out, provider)
	successText.Fprintln(out, " agent created")
}

// PrintAgentFailed logs a provider failure.
// Format: [429] retell rate limited ...
func PrintAgentFailed(provider string, status int, detail string) {
	out := color.Output
	errorBadge.Fprintf(out, " %d ", status)
	fmt.Fprint(out, " ")
	accentText.Fprint(out, provider)
	fmt.Fprint(out, " ")
	errorText.Fprintln(out, truncate(detail, maxDetailLen))
}

// PrintRejected logs a request that failed validation.
func PrintRejected(reason string) {
	out := color.Output
	warningBadge.Fprint(out, "[400]")
	fmt.Fprint(out, " ")
	warningText.Fprintln(out, reason)
}

// ══════════════════════════════════════════════════════════════════════════════
// STARTUP MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// PrintStartupInfo prints server address, credential status and endpoints.
func PrintStartupInfo(host string, port int, credentials map[string]bool) {
	out := color.Output

	fmt.Fprintln(out)
	infoBadge.Fprint(out, "[GATEWAY]")
	fmt.Fprint(out, " Server starting on ")
	neonBlue.Fprintf(out, "http://%s:%d\n", host, port)

	names := make([]string, 0, len(credentials))
	for name := range credentials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		infoBadge.Fprint(out, "[GATEWAY]")
		fmt.Fprintf(out, " %-8s ", name)
		if credentials[name] {
			successText.Fprintln(out, "api key configured")
		} else {
			errorText.Fprintln(out, "api key missing")
		}
	}

	fmt.Fprintln(out)
	printEndpoints()
}

// printEndpoints prints the available API endpoints.
func printEndpoints() {
	out := color.Output

	mutedText.Fprintln(out, "  ┌──────────────────────────────────────────────┐")
	mutedText.Fprint(out, "  │ ")
	methodPOST.Fprint(out, " POST ")
	fmt.Fprint(out, " /create-agent ")
	mutedText.Fprint(out, "  Create vapi/retell agent")
	mutedText.Fprintln(out, "  │")

	mutedText.Fprint(out, "  │ ")
	methodGET.Fprint(out, " GET  ")
	fmt.Fprint(out, " /health       ")
	mutedText.Fprint(out, "  Health check            ")
	mutedText.Fprintln(out, "  │")

	mutedText.Fprintln(out, "  └──────────────────────────────────────────────┘")
	fmt.Fprintln(out)
}

// PrintShutdown prints a styled shutdown message.
func PrintShutdown() {
	out := color.Output
	fmt.Fprintln(out)
	warningBadge.Fprint(out, "[SHUTDOWN]")
	warningText.Fprintln(out, " Graceful shutdown initiated...")
}

// PrintGoodbye prints a styled goodbye message.
func PrintGoodbye() {
	out := color.Output
	successBadge.Fprint(out, " OK ")
	fmt.Fprint(out, " ")
	successText.Fprintln(out, "Server stopped. Goodbye!")
}

// truncate shortens s to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
