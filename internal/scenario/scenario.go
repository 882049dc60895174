// Package scenario enumerates the full cartesian product of test
// scenarios: every registry profile crossed with every need category,
// force flag, and preprep flag.
package scenario

import "forcegen/internal/profile"

// Scenario is one combination under test. It is immutable once
// produced; the derivation engine treats it as read-only input.
type Scenario struct {
	Profile  profile.Profile
	Category profile.NeedCategory
	Forced   bool
	Preprep  bool
}

// Enumerate emits scenarios in a fixed order: profiles in registration
// order, categories in profile.Categories order, forced ascending,
// preprep ascending. The order carries no semantics but makes the
// generated artifact reproducible byte-for-byte.
func Enumerate(reg *profile.Registry) []Scenario {
	scenarios := make([]Scenario, 0, reg.Len()*len(profile.Categories)*4)
	for _, p := range reg.Profiles() {
		for _, cat := range profile.Categories {
			for _, forced := range [...]bool{false, true} {
				for _, preprep := range [...]bool{false, true} {
					scenarios = append(scenarios, Scenario{
						Profile:  p,
						Category: cat,
						Forced:   forced,
						Preprep:  preprep,
					})
				}
			}
		}
	}
	return scenarios
}
