package profile

import "fmt"

// Registry is the ordered, name-deduplicated profile catalog. Order is
// registration order and fixes the order of generated test blocks.
type Registry struct {
	profiles []Profile
	byName   map[string]int
}

// NewRegistry builds a registry from profiles in the given order and
// validates every entry. Duplicate names and structural defects abort
// with a diagnostic naming the offending profile; a partially valid
// catalog is never returned.
func NewRegistry(profiles []Profile) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(profiles))}
	for _, p := range profiles {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("profile %q: duplicate name", p.Name)
		}
		r.byName[p.Name] = len(r.profiles)
		r.profiles = append(r.profiles, p)
	}
	return r, nil
}

// Profiles returns the catalog in registration order.
func (r *Registry) Profiles() []Profile {
	return r.profiles
}

// Lookup returns the profile with the given name.
func (r *Registry) Lookup(name string) (Profile, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Profile{}, false
	}
	return r.profiles[i], true
}

func (r *Registry) Len() int {
	return len(r.profiles)
}

// epelHook verifies that the workaround's supplemental-repository
// enablement happened on the expected path and nowhere else.
func epelHook() *Hook {
	return &Hook{
		Name:    "epel",
		Outputs: []string{`(Installing|Upgrading|installed).+epel-release`},
		Files:   []FileAssert{{Path: "/etc/yum.repos.d/epel.repo"}},
	}
}

func withHook(p Profile, h *Hook) Profile {
	p.Hook = h
	return p
}

// Builtin returns the compiled-in catalog. Profiles are registered
// explicitly, in the order their test blocks should appear; nothing is
// discovered by naming convention.
func Builtin() (*Registry, error) {
	return NewRegistry([]Profile{
		withHook(Compose(tmplYum, Override{
			Name:         "centos_7",
			Base:         "centos:7",
			Config:       "rhel7",
			ArchExcludes: []string{"aarch64"},
			Prep:         "yum install -y epel-release",
		}), epelHook()),
		withHook(Compose(tmplDNF, Override{
			Name:   "almalinux_8",
			Base:   "almalinux:8",
			Config: "rhel8",
			Scope:  ScopeStandard,
			Prep:   "dnf install -y epel-release",
		}), epelHook()),
		Compose(tmplDNF, Override{
			Name:   "fedora_latest",
			Base:   "fedora:latest",
			Config: "fedora",
		}),
		Compose(tmplApt, Override{
			Name:   "debian_11",
			Base:   "debian:bullseye",
			Config: "debderiv",
			Scope:  ScopeStandard,
		}),
		Compose(tmplApt, Override{
			Name:   "ubuntu_22",
			Base:   "ubuntu:jammy",
			Config: "debderiv",
		}),
		Compose(tmplZypper, Override{
			Name:   "opensuse_15",
			Base:   "opensuse/leap:15",
			Config: "suse",
		}),
		Compose(tmplPacman, Override{
			Name:         "arch_latest",
			Base:         "archlinux:latest",
			Config:       "arch",
			ArchExcludes: []string{"aarch64", "ppc64le"},
			// pacman has no representative package whose install
			// succeeds unprivileged yet matches the workaround's
			// rewrite patterns.
			Runs: map[NeedCategory]string{FakeNeeded: ""},
		}),
		Compose(tmplApk, Override{
			Name:   "alpine_latest",
			Base:   "alpine:latest",
			Config: "alpine",
			Scope:  ScopeStandard,
		}),
	})
}
