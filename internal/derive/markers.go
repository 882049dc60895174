package derive

import "fmt"

// Diagnostic markers the build tool prints around the --force
// workaround. The generated script asserts on these as literal
// substrings, so the wording here must track the tool exactly.

const (
	markNothingToDo = "warning: --force specified, but nothing to do"
	markAvailHere   = "available here with --force"
	markBuildFailed = "build failed"
	markMayFix      = "--force may fix it"
	markWouldntHelp = "--force wouldn't help"
)

// markWillUse is the opting-in marker: the tool announces which
// workaround configuration it selected.
func markWillUse(config string) string {
	return fmt.Sprintf("will use --force: %s", config)
}

// markAvailable is printed when a configuration matched but --force was
// not given.
func markAvailable(config string) string {
	return fmt.Sprintf("available --force: %s", config)
}

// markModified confirms how many build instructions the workaround
// rewrote.
func markModified(n int) string {
	return fmt.Sprintf("modified %d instructions", n)
}
