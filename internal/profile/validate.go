package profile

import (
	"fmt"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// validate rejects structurally defective profiles before any scenario
// is derived. Generation is all-or-nothing: a defect anywhere aborts
// the whole run (the artifact is always regenerated wholesale).
func validate(p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile with base %q: missing name", p.Base)
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("profile %q: %s", p.Name, fmt.Sprintf(format, args...))
	}

	if p.Base == "" {
		return fail("missing base image")
	}
	if p.Config == "" {
		return fail("missing configuration name")
	}
	if p.Scope != ScopeStandard && p.Scope != ScopeFull {
		return fail("invalid scope %q", string(p.Scope))
	}
	for _, cat := range [...]NeedCategory{UnneededFail, UnneededWin} {
		if _, ok := p.Runs[cat]; !ok {
			return fail("category %s must be defined", cat)
		}
	}
	for cat, cmd := range p.Runs {
		if _, err := ParseNeedCategory(string(cat)); err != nil {
			return fail("%v", err)
		}
		if err := checkShell(cmd); err != nil {
			return fail("command for %s: %v", cat, err)
		}
	}
	if p.Prep != "" {
		if err := checkShell(p.Prep); err != nil {
			return fail("preparation command: %v", err)
		}
	}
	if h := p.Hook; h != nil {
		if h.Name == "" {
			return fail("hook: missing name")
		}
		if len(h.Outputs) == 0 && len(h.Files) == 0 {
			return fail("hook %q: no assertions", h.Name)
		}
		for _, pat := range h.Outputs {
			if _, err := regexp.Compile(pat); err != nil {
				return fail("hook %q: output pattern: %v", h.Name, err)
			}
			if strings.Contains(pat, "'") {
				return fail("hook %q: output pattern must not contain single quotes", h.Name)
			}
		}
		for _, f := range h.Files {
			if !strings.HasPrefix(f.Path, "/") {
				return fail("hook %q: file path %q is not absolute", h.Name, f.Path)
			}
			if f.Pattern != "" {
				if _, err := regexp.Compile(f.Pattern); err != nil {
					return fail("hook %q: file pattern: %v", h.Name, err)
				}
			}
		}
	}
	return nil
}

// checkShell verifies that a command embeds cleanly into a generated
// build instruction, i.e. it parses as a POSIX shell command list.
func checkShell(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return fmt.Errorf("empty command")
	}
	if strings.Contains(cmd, "\n") {
		return fmt.Errorf("command must be a single line")
	}
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	if _, err := parser.Parse(strings.NewReader(cmd), ""); err != nil {
		return fmt.Errorf("not valid shell: %w", err)
	}
	return nil
}
