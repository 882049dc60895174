package profile

// Template is a package-manager family baseline. Every template defines
// the two unconditional categories; families add their own FakeNeeded
// and Needed commands where a representative package exists.
type Template struct {
	Family string
	Scope  Scope
	Runs   map[NeedCategory]string
}

// Override is a per-distribution record layered over a family template.
// Zero-valued fields fall through to the template.
type Override struct {
	Name         string
	Base         string
	Config       string
	Scope        Scope
	ArchExcludes []string
	Prep         string
	Runs         map[NeedCategory]string
}

// baseRuns is what every family inherits: a command that fails no
// matter what and a command that succeeds no matter what.
func baseRuns() map[NeedCategory]string {
	return map[NeedCategory]string{
		UnneededFail: "false",
		UnneededWin:  "true",
	}
}

func familyTemplate(family string, scope Scope, runs map[NeedCategory]string) Template {
	merged := baseRuns()
	for cat, cmd := range runs {
		merged[cat] = cmd
	}
	return Template{Family: family, Scope: scope, Runs: merged}
}

// Package-manager family templates. Commands are chosen so that the
// Needed package carries an ownership-changing install scriptlet while
// the FakeNeeded package merely matches the workaround's command
// patterns.
var (
	tmplDNF = familyTemplate("dnf", ScopeFull, map[NeedCategory]string{
		FakeNeeded: "dnf install -y ed",
		Needed:     "dnf install -y openssh",
	})
	tmplYum = familyTemplate("yum", ScopeFull, map[NeedCategory]string{
		FakeNeeded: "yum install -y ed",
		Needed:     "yum install -y openssh",
	})
	tmplApt = familyTemplate("apt", ScopeFull, map[NeedCategory]string{
		FakeNeeded: "apt-get update && apt-get install -y ed",
		Needed:     "apt-get update && apt-get install -y openssh-client",
	})
	tmplZypper = familyTemplate("zypper", ScopeFull, map[NeedCategory]string{
		FakeNeeded: "zypper install -y ed",
		Needed:     "zypper install -y openssh",
	})
	tmplPacman = familyTemplate("pacman", ScopeFull, map[NeedCategory]string{
		FakeNeeded: "pacman -Syq --noconfirm ed",
		Needed:     "pacman -Syq --noconfirm openssh",
	})
	tmplApk = familyTemplate("apk", ScopeFull, map[NeedCategory]string{
		FakeNeeded: "apk add ed",
		Needed:     "apk add dbus",
	})
)

// Compose builds a Profile from a family template and a distribution
// override. Precedence is per-field: the override value wins when
// present, otherwise the template baseline, otherwise absent. Hooks are
// not composed here; attachment is a separate axis (see Registry).
func Compose(tmpl Template, ov Override) Profile {
	p := Profile{
		Name:         ov.Name,
		Base:         ov.Base,
		Config:       ov.Config,
		Scope:        tmpl.Scope,
		ArchExcludes: ov.ArchExcludes,
		Prep:         ov.Prep,
		Runs:         make(map[NeedCategory]string, len(tmpl.Runs)),
	}
	if ov.Scope != "" {
		p.Scope = ov.Scope
	}
	for cat, cmd := range tmpl.Runs {
		p.Runs[cat] = cmd
	}
	// An override entry replaces the baseline command; an explicitly
	// empty entry removes the category from the profile entirely.
	for cat, cmd := range ov.Runs {
		if cmd == "" {
			delete(p.Runs, cat)
			continue
		}
		p.Runs[cat] = cmd
	}
	return p
}
