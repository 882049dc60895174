// Package emit renders derived scenarios into one executable bats
// script. The emitter writes a single text stream and performs no file
// I/O itself; callers decide where the stream lands.
package emit

import (
	"fmt"
	"io"
	"strings"

	"forcegen/internal/derive"
	"forcegen/internal/profile"
	"forcegen/internal/scenario"
)

// Emitter holds the knobs that shape the generated script. The zero
// value is not usable; construct with New.
type Emitter struct {
	// builderVar is the environment variable naming the build tool
	// binary. The generated script skips itself without it.
	builderVar string
	// tagBase prefixes every image tag the script creates.
	tagBase string
}

// Stats summarizes one generation run.
type Stats struct {
	Profiles  int
	Scenarios int
	Emitted   int
	Skipped   int
	ByReason  map[string]int
}

func New() *Emitter {
	return &Emitter{builderVar: "FORCE_BUILDER", tagBase: "force"}
}

// Write derives every scenario for the registry and renders the full
// script to w: one fixed preamble, then one test block per non-skipped
// scenario and one inert comment per skipped one, in enumeration
// order. Output is byte-identical across runs for an unchanged
// registry. A derivation error aborts with nothing further written;
// callers must treat partial output as invalid.
func (e *Emitter) Write(w io.Writer, reg *profile.Registry) (Stats, error) {
	stats := Stats{
		Profiles: reg.Len(),
		ByReason: make(map[string]int),
	}

	if err := e.preamble(w); err != nil {
		return stats, err
	}

	for _, sc := range scenario.Enumerate(reg) {
		stats.Scenarios++
		res, err := derive.Derive(sc)
		if err != nil {
			return stats, err
		}
		if res.Skip {
			stats.Skipped++
			stats.ByReason[res.SkipReason]++
			if _, err := fmt.Fprintf(w, "# skip: %s: %s\n", testName(sc), res.SkipReason); err != nil {
				return stats, err
			}
			continue
		}
		stats.Emitted++
		if err := e.block(w, sc, res); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func testName(sc scenario.Scenario) string {
	parts := []string{sc.Profile.Name, string(sc.Category)}
	if sc.Forced {
		parts = append(parts, "forced")
	} else {
		parts = append(parts, "unforced")
	}
	if sc.Preprep {
		parts = append(parts, "preprep")
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) preamble(w io.Writer) error {
	_, err := fmt.Fprintf(w, `#!/usr/bin/env bats
# Generated by forcegen. DO NOT EDIT; regenerate instead.
#
# Each test feeds the build tool one instruction and asserts on the
# exit status, the diagnostics around the --force workaround, and the
# contents of the resulting image.

setup () {
    [[ ${%[1]s:-} ]] || skip '%[1]s not set'
    [[ ${FORCE_IMG_ROOT:-} ]] || skip 'FORCE_IMG_ROOT not set'
}

scope () {
    case $1 in
        standard) ;;
        full) [[ ${FORCE_SCOPE:-} = full ]] || skip 'full scope only' ;;
    esac
}

arch_exclude () {
    [[ $(uname -m) != "$1" ]] || skip "arch excluded: $1"
}

img_has () {  # img_has TAG PATH [REGEX]
    local f=$FORCE_IMG_ROOT/$1$2
    [[ -e $f ]]
    [[ -z ${3:-} ]] || grep -Eq -- "$3" "$f"
}

img_lacks () {  # img_lacks TAG PATH
    [[ ! -e $FORCE_IMG_ROOT/$1$2 ]]
}
`, e.builderVar)
	return err
}

func (e *Emitter) block(w io.Writer, sc scenario.Scenario, res derive.Result) error {
	var b strings.Builder
	p := sc.Profile

	fmt.Fprintf(&b, "\n@test \"force: %s\" {\n", testName(sc))
	fmt.Fprintf(&b, "  scope %s\n", res.Scope)
	for _, arch := range p.ArchExcludes {
		fmt.Fprintf(&b, "  arch_exclude %s\n", arch)
	}

	tag := e.tagBase + "." + p.Name
	base := p.Base
	if sc.Preprep {
		prepTag := tag + ".prep"
		e.build(&b, prepTag, p.Base, false, p.Prep)
		b.WriteString("  [[ $status -eq 0 ]]\n")
		writeRegexAsserts(&b, res.PrepOutputs)
		writeFileChecks(&b, prepTag, res.PrepFiles)
		base = prepTag
	}

	e.build(&b, tag, base, sc.Forced, p.Runs[sc.Category])
	fmt.Fprintf(&b, "  [[ $status -eq %d ]]\n", res.Status)
	for _, out := range res.Outputs {
		fmt.Fprintf(&b, "  [[ $output = *\"%s\"* ]]\n", out)
	}
	writeRegexAsserts(&b, res.HookOutputs)
	writeFileChecks(&b, tag, res.Files)
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// build emits one builder invocation fed a two-line build file on
// stdin, followed by the output echo that bats needs for diagnosis.
func (e *Emitter) build(b *strings.Builder, tag, base string, forced bool, cmd string) {
	force := ""
	if forced {
		force = "--force "
	}
	fmt.Fprintf(b, "  run \"$%s\" build %s-t %s -f - . <<'BUILDFILE'\n", e.builderVar, force, tag)
	fmt.Fprintf(b, "FROM %s\n", base)
	fmt.Fprintf(b, "RUN %s\n", cmd)
	b.WriteString("BUILDFILE\n")
	b.WriteString("  echo \"$output\"\n")
}

func writeRegexAsserts(b *strings.Builder, patterns []string) {
	for _, pat := range patterns {
		fmt.Fprintf(b, "  re='%s'\n", pat)
		b.WriteString("  [[ $output =~ $re ]]\n")
	}
}

func writeFileChecks(b *strings.Builder, tag string, checks []derive.FileCheck) {
	for _, fc := range checks {
		if fc.Absent {
			fmt.Fprintf(b, "  img_lacks %s %s\n", tag, fc.Path)
			continue
		}
		if fc.Pattern != "" {
			fmt.Fprintf(b, "  img_has %s %s '%s'\n", tag, fc.Path, fc.Pattern)
		} else {
			fmt.Fprintf(b, "  img_has %s %s\n", tag, fc.Path)
		}
	}
}
