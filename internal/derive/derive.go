// Package derive maps one enumerated scenario to its expected outcome:
// skip or run, test scope, exit status, and the ordered output and
// filesystem assertions the generated test must make.
package derive

import (
	"fmt"

	"forcegen/internal/profile"
	"forcegen/internal/scenario"
)

// FileCheck is one filesystem assertion against a built image. Absent
// asserts the path does not exist; otherwise the path must exist and,
// if Pattern is non-empty, contain a line matching it.
type FileCheck struct {
	Pattern string
	Path    string
	Absent  bool
}

// Result is the derived expectation for one scenario. Skip is a
// first-class outcome, not an error: skipped scenarios surface as inert
// comments in the artifact.
type Result struct {
	Skip       bool
	SkipReason string

	Scope  profile.Scope
	Status int

	// Assertions for the preparatory build, present only for preprep
	// scenarios. PrepFiles inspect the intermediate image.
	PrepOutputs []string
	PrepFiles   []FileCheck

	// Assertions for the build under test, in emission order. Outputs
	// are literal substrings of the build output; HookOutputs are
	// extended regexes and follow them. Files inspect the final image.
	Outputs     []string
	HookOutputs []string
	Files       []FileCheck
}

func skip(reason string) Result {
	return Result{Skip: true, SkipReason: reason}
}

// Derive computes the expected outcome for one scenario. It is pure:
// no I/O, no shared state. An error signals a configuration defect
// that must abort the whole generation run; ordinary inputs never
// produce one.
func Derive(sc scenario.Scenario) (Result, error) {
	p := sc.Profile

	// Preprep materializes an extra image, so it is only exercised for
	// the one combination that tests "workaround already applied
	// beforehand".
	if sc.Preprep && !(sc.Forced && sc.Category == profile.Needed) {
		return skip("preprep only tested when forced and needed"), nil
	}
	if sc.Preprep && p.Prep == "" {
		return skip("no preparation command"), nil
	}
	if _, ok := p.Runs[sc.Category]; !ok {
		return skip(fmt.Sprintf("category %s not defined", sc.Category)), nil
	}

	res := Result{Scope: scope(p, sc.Category)}

	var err error
	res.Status, err = status(sc)
	if err != nil {
		return Result{}, fmt.Errorf("profile %q: %w", p.Name, err)
	}

	res.Outputs = outputs(p.Config, sc)
	applyHook(&res, sc)
	return res, nil
}

// scope keeps the one scenario that proves the workaround is required
// in the fast tier regardless of the profile's default.
func scope(p profile.Profile, cat profile.NeedCategory) profile.Scope {
	if p.Scope == profile.ScopeStandard || cat == profile.Needed {
		return profile.ScopeStandard
	}
	return profile.ScopeFull
}

// status derives the expected exit status. The default branch should
// be unreachable for the closed category set; reaching it means the
// catalog is defective and generation must not emit an ambiguous test.
func status(sc scenario.Scenario) (int, error) {
	switch sc.Category {
	case profile.UnneededFail:
		return 1, nil
	case profile.UnneededWin, profile.FakeNeeded:
		return 0, nil
	case profile.Needed:
		if sc.Forced {
			return 0, nil
		}
		return 1, nil
	default:
		return 0, fmt.Errorf("no expected-status rule for category %q", sc.Category)
	}
}

// outputs assembles the ordered output assertions for the build under
// test.
func outputs(config string, sc scenario.Scenario) []string {
	var out []string
	if sc.Forced {
		out = append(out, markWillUse(config))
		switch sc.Category {
		case profile.UnneededWin:
			out = append(out, markNothingToDo)
		case profile.Needed, profile.FakeNeeded:
			out = append(out, markModified(1))
		}
		return out
	}

	out = append(out, markAvailable(config))
	if sc.Category == profile.Needed || sc.Category == profile.FakeNeeded {
		out = append(out, markAvailHere)
	}
	switch sc.Category {
	case profile.Needed:
		out = append(out, markBuildFailed, markMayFix)
	case profile.UnneededFail:
		out = append(out, markBuildFailed, markWouldntHelp)
	}
	return out
}

// applyHook appends capability-hook assertions. Exactly one install
// path runs per scenario: the preparatory build, or the workaround
// while rewriting instructions in a forced build. The workaround
// installs the hook artifact itself and removes it when done,
// superseding any preparatory install, so the artifact must be absent
// from the final image when the workaround engaged and present when
// preprep alone installed it.
func applyHook(res *Result, sc scenario.Scenario) {
	h := sc.Profile.Hook
	if h == nil {
		return
	}

	if sc.Preprep {
		res.PrepOutputs = append(res.PrepOutputs, h.Outputs...)
		for _, f := range h.Files {
			res.PrepFiles = append(res.PrepFiles, FileCheck{
				Pattern: f.Pattern,
				Path:    f.Path,
				Absent:  f.Invert,
			})
		}
	}

	// The workaround's own install path engages only when it rewrote
	// at least one instruction.
	engaged := sc.Forced &&
		(sc.Category == profile.Needed || sc.Category == profile.FakeNeeded)
	if engaged {
		res.HookOutputs = append(res.HookOutputs, h.Outputs...)
	}

	// Final-image checks only make sense when a final image exists.
	if res.Status != 0 {
		return
	}
	switch {
	case engaged:
		for _, f := range h.Files {
			res.Files = append(res.Files, FileCheck{
				Pattern: f.Pattern,
				Path:    f.Path,
				Absent:  !f.Invert,
			})
		}
	case sc.Preprep:
		for _, f := range h.Files {
			res.Files = append(res.Files, FileCheck{
				Pattern: f.Pattern,
				Path:    f.Path,
				Absent:  f.Invert,
			})
		}
	}
}
