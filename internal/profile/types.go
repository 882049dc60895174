package profile

import "fmt"

// NeedCategory classifies a command's relationship to the build tool's
// --force workaround: it fails no matter what, succeeds no matter what,
// looks like it needs --force but doesn't, or genuinely needs it.
type NeedCategory string

const (
	UnneededFail NeedCategory = "unneeded-fail"
	UnneededWin  NeedCategory = "unneeded-win"
	FakeNeeded   NeedCategory = "fake-needed"
	Needed       NeedCategory = "needed"
)

// Categories is the fixed enumeration order. Generated test blocks are
// ordered by it, so changing it changes the artifact byte-for-byte.
var Categories = [...]NeedCategory{UnneededFail, UnneededWin, FakeNeeded, Needed}

// ParseNeedCategory maps a definition-file key to a category.
// Unknown keys are a configuration defect, never coerced.
func ParseNeedCategory(s string) (NeedCategory, error) {
	switch NeedCategory(s) {
	case UnneededFail, UnneededWin, FakeNeeded, Needed:
		return NeedCategory(s), nil
	}
	return "", fmt.Errorf("unknown need category %q", s)
}

// Scope is the test-run tier a generated case belongs to.
type Scope string

const (
	ScopeStandard Scope = "standard"
	ScopeFull     Scope = "full"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeStandard, ScopeFull:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

// FileAssert is one hook file assertion: the file at Path must exist
// and, if Pattern is non-empty, contain a line matching it. Invert
// flips the existence expectation.
type FileAssert struct {
	Pattern string `yaml:"pattern,omitempty"`
	Path    string `yaml:"path"`
	Invert  bool   `yaml:"invert,omitempty"`
}

// Hook is an optional cross-cutting augmentation attached to a profile,
// verifying a secondary side effect of the workaround (e.g. that a
// supplemental package repository was enabled). It is never part of a
// package-manager family template; attachment is per-profile.
type Hook struct {
	Name    string       `yaml:"name"`
	Outputs []string     `yaml:"outputs"` // extended regexes, asserted in order
	Files   []FileAssert `yaml:"files"`
}

// Profile is one target environment: a base image plus the commands
// that exercise each need category under that environment's package
// manager dialect.
type Profile struct {
	// Name identifies the profile in test names and diagnostics.
	Name string
	// Base is the image reference builds start FROM.
	Base string
	// Config is the workaround's internal label for this dialect,
	// echoed in the build tool's diagnostics.
	Config string
	// Scope is the default tier; the derivation engine may promote
	// individual scenarios to standard.
	Scope Scope
	// ArchExcludes lists architectures the generated test must skip.
	ArchExcludes []string
	// Prep is an optional preparatory command baked into an
	// intermediate image for preprep scenarios. Empty means preprep
	// scenarios are skipped for this profile.
	Prep string
	// Runs maps each applicable category to the command under test.
	// UnneededFail and UnneededWin are always present after
	// composition; FakeNeeded and Needed may be absent.
	Runs map[NeedCategory]string
	// Hook is the optional capability hook. At most one per profile.
	Hook *Hook
}
