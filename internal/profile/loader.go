package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition-file schema. The file replaces the builtin catalog
// wholesale; there is no per-profile merging between file and builtin.
type profileFile struct {
	Profiles []profileDef `yaml:"profiles"`
}

type profileDef struct {
	Name         string            `yaml:"name"`
	Family       string            `yaml:"family,omitempty"`
	Base         string            `yaml:"base"`
	Config       string            `yaml:"config"`
	Scope        string            `yaml:"scope,omitempty"`
	ArchExcludes []string          `yaml:"arch_excludes,omitempty"`
	Prep         string            `yaml:"prep,omitempty"`
	Runs         map[string]string `yaml:"runs,omitempty"`
	Hook         *Hook             `yaml:"hook,omitempty"`
}

var familyTemplates = map[string]Template{
	"dnf":    tmplDNF,
	"yum":    tmplYum,
	"apt":    tmplApt,
	"zypper": tmplZypper,
	"pacman": tmplPacman,
	"apk":    tmplApk,
}

// Load reads a profile definition file and builds a validated registry
// from it, preserving file order.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles: %w", err)
	}
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("profiles file %s: no profiles defined", path)
	}

	profiles := make([]Profile, 0, len(file.Profiles))
	for _, def := range file.Profiles {
		p, err := def.compose()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return NewRegistry(profiles)
}

func (def profileDef) compose() (Profile, error) {
	fail := func(format string, args ...any) (Profile, error) {
		return Profile{}, fmt.Errorf("profile %q: %s", def.Name, fmt.Sprintf(format, args...))
	}

	// Profiles without a family start from the bare baseline and must
	// spell out their own FakeNeeded/Needed commands.
	tmpl := familyTemplate("", ScopeFull, nil)
	if def.Family != "" {
		t, ok := familyTemplates[def.Family]
		if !ok {
			return fail("unknown package-manager family %q", def.Family)
		}
		tmpl = t
	}

	ov := Override{
		Name:         def.Name,
		Base:         def.Base,
		Config:       def.Config,
		ArchExcludes: def.ArchExcludes,
		Prep:         def.Prep,
	}
	if def.Scope != "" {
		scope, err := ParseScope(def.Scope)
		if err != nil {
			return fail("%v", err)
		}
		ov.Scope = scope
	}
	if len(def.Runs) > 0 {
		ov.Runs = make(map[NeedCategory]string, len(def.Runs))
		for key, cmd := range def.Runs {
			cat, err := ParseNeedCategory(key)
			if err != nil {
				return fail("%v", err)
			}
			ov.Runs[cat] = cmd
		}
	}

	p := Compose(tmpl, ov)
	p.Hook = def.Hook
	return p, nil
}
