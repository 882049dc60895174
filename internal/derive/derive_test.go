package derive

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"forcegen/internal/profile"
	"forcegen/internal/scenario"
)

func alpine() profile.Profile {
	return profile.Profile{
		Name:   "alpine",
		Base:   "alpine:latest",
		Config: "alpine",
		Scope:  profile.ScopeFull,
		Runs: map[profile.NeedCategory]string{
			profile.UnneededFail: "false",
			profile.UnneededWin:  "true",
			profile.FakeNeeded:   "apk add ed",
			profile.Needed:       "apk add dbus",
		},
	}
}

func hooked() profile.Profile {
	p := alpine()
	p.Name = "centos_7"
	p.Base = "centos:7"
	p.Config = "rhel7"
	p.Prep = "yum install -y epel-release"
	p.Hook = &profile.Hook{
		Name:    "epel",
		Outputs: []string{"epel-release"},
		Files:   []profile.FileAssert{{Path: "/etc/yum.repos.d/epel.repo"}},
	}
	return p
}

func mustDerive(t *testing.T, sc scenario.Scenario) Result {
	t.Helper()
	res, err := Derive(sc)
	if err != nil {
		t.Fatalf("unexpected derivation error: %v", err)
	}
	return res
}

func TestDerive_StatusTable(t *testing.T) {
	p := alpine()
	tests := []struct {
		category profile.NeedCategory
		forced   bool
		status   int
	}{
		{profile.UnneededFail, false, 1},
		{profile.UnneededFail, true, 1},
		{profile.UnneededWin, false, 0},
		{profile.UnneededWin, true, 0},
		{profile.FakeNeeded, false, 0},
		{profile.FakeNeeded, true, 0},
		{profile.Needed, false, 1},
		{profile.Needed, true, 0},
	}

	for _, tt := range tests {
		res := mustDerive(t, scenario.Scenario{Profile: p, Category: tt.category, Forced: tt.forced})
		if res.Skip {
			t.Errorf("%s forced=%v: unexpected skip (%s)", tt.category, tt.forced, res.SkipReason)
			continue
		}
		if res.Status != tt.status {
			t.Errorf("%s forced=%v: expected status %d, got %d", tt.category, tt.forced, tt.status, res.Status)
		}
	}
}

func TestDerive_PreprepOnlyForcedNeeded(t *testing.T) {
	p := hooked()
	for _, cat := range profile.Categories {
		for _, forced := range [...]bool{false, true} {
			res := mustDerive(t, scenario.Scenario{Profile: p, Category: cat, Forced: forced, Preprep: true})
			wantSkip := !(forced && cat == profile.Needed)
			if res.Skip != wantSkip {
				t.Errorf("%s forced=%v preprep: skip=%v, expected %v", cat, forced, res.Skip, wantSkip)
			}
		}
	}
}

func TestDerive_PreprepWithoutPrepCommand(t *testing.T) {
	res := mustDerive(t, scenario.Scenario{
		Profile:  alpine(), // no prep command
		Category: profile.Needed,
		Forced:   true,
		Preprep:  true,
	})
	if !res.Skip || !strings.Contains(res.SkipReason, "no preparation command") {
		t.Errorf("expected prep-less skip, got %+v", res)
	}
}

func TestDerive_CategoryNotDefined(t *testing.T) {
	p := alpine()
	delete(p.Runs, profile.FakeNeeded)
	res := mustDerive(t, scenario.Scenario{Profile: p, Category: profile.FakeNeeded})
	if !res.Skip || !strings.Contains(res.SkipReason, "not defined") {
		t.Errorf("expected category skip, got %+v", res)
	}
}

func TestDerive_Scope(t *testing.T) {
	tests := []struct {
		defaultScope profile.Scope
		category     profile.NeedCategory
		want         profile.Scope
	}{
		{profile.ScopeStandard, profile.UnneededWin, profile.ScopeStandard},
		{profile.ScopeStandard, profile.Needed, profile.ScopeStandard},
		{profile.ScopeFull, profile.UnneededWin, profile.ScopeFull},
		{profile.ScopeFull, profile.FakeNeeded, profile.ScopeFull},
		// The proof that the workaround is required always stays fast.
		{profile.ScopeFull, profile.Needed, profile.ScopeStandard},
	}

	for _, tt := range tests {
		p := alpine()
		p.Scope = tt.defaultScope
		res := mustDerive(t, scenario.Scenario{Profile: p, Category: tt.category, Forced: true})
		if res.Scope != tt.want {
			t.Errorf("default=%s category=%s: expected %s, got %s",
				tt.defaultScope, tt.category, tt.want, res.Scope)
		}
	}
}

// Scenario: alpine, needed, forced.
func TestDerive_ForcedNeeded(t *testing.T) {
	res := mustDerive(t, scenario.Scenario{Profile: alpine(), Category: profile.Needed, Forced: true})
	if res.Skip {
		t.Fatalf("unexpected skip: %s", res.SkipReason)
	}
	if res.Status != 0 {
		t.Errorf("expected status 0, got %d", res.Status)
	}
	want := []string{
		"will use --force: alpine",
		"modified 1 instructions",
	}
	if diff := cmp.Diff(want, res.Outputs); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

// Scenario: alpine, needed, unforced.
func TestDerive_UnforcedNeeded(t *testing.T) {
	res := mustDerive(t, scenario.Scenario{Profile: alpine(), Category: profile.Needed})
	if res.Status != 1 {
		t.Errorf("expected status 1, got %d", res.Status)
	}
	want := []string{
		"available --force: alpine",
		"available here with --force",
		"build failed",
		"--force may fix it",
	}
	if diff := cmp.Diff(want, res.Outputs); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

// Scenario: alpine, unneeded-fail, unforced.
func TestDerive_UnforcedUnneededFail(t *testing.T) {
	res := mustDerive(t, scenario.Scenario{Profile: alpine(), Category: profile.UnneededFail})
	if res.Status != 1 {
		t.Errorf("expected status 1, got %d", res.Status)
	}
	want := []string{
		"available --force: alpine",
		"build failed",
		"--force wouldn't help",
	}
	if diff := cmp.Diff(want, res.Outputs); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_ForcedUnneededWin(t *testing.T) {
	res := mustDerive(t, scenario.Scenario{Profile: alpine(), Category: profile.UnneededWin, Forced: true})
	want := []string{
		"will use --force: alpine",
		"warning: --force specified, but nothing to do",
	}
	if diff := cmp.Diff(want, res.Outputs); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

// Scenario: hooked profile, preprep, forced, needed. The hook artifact
// is installed by the preparatory build, then superseded by the
// workaround's own install-and-remove path.
func TestDerive_HookPreprepForcedNeeded(t *testing.T) {
	res := mustDerive(t, scenario.Scenario{
		Profile:  hooked(),
		Category: profile.Needed,
		Forced:   true,
		Preprep:  true,
	})
	if res.Skip {
		t.Fatalf("unexpected skip: %s", res.SkipReason)
	}

	if diff := cmp.Diff([]string{"epel-release"}, res.PrepOutputs); diff != "" {
		t.Errorf("prep outputs mismatch (-want +got):\n%s", diff)
	}
	wantPrep := []FileCheck{{Path: "/etc/yum.repos.d/epel.repo", Absent: false}}
	if diff := cmp.Diff(wantPrep, res.PrepFiles); diff != "" {
		t.Errorf("prep files mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"epel-release"}, res.HookOutputs); diff != "" {
		t.Errorf("hook outputs mismatch (-want +got):\n%s", diff)
	}
	wantFinal := []FileCheck{{Path: "/etc/yum.repos.d/epel.repo", Absent: true}}
	if diff := cmp.Diff(wantFinal, res.Files); diff != "" {
		t.Errorf("final files mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_HookForcedWithoutPreprep(t *testing.T) {
	res := mustDerive(t, scenario.Scenario{Profile: hooked(), Category: profile.FakeNeeded, Forced: true})
	if len(res.PrepOutputs) != 0 || len(res.PrepFiles) != 0 {
		t.Error("expected no prep assertions without preprep")
	}
	wantFinal := []FileCheck{{Path: "/etc/yum.repos.d/epel.repo", Absent: true}}
	if diff := cmp.Diff(wantFinal, res.Files); diff != "" {
		t.Errorf("final files mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_HookIdleWhenWorkaroundNotEngaged(t *testing.T) {
	tests := []scenario.Scenario{
		// Unforced: the workaround never runs its install path.
		{Profile: hooked(), Category: profile.Needed},
		// Forced but nothing rewritten.
		{Profile: hooked(), Category: profile.UnneededWin, Forced: true},
	}
	for _, sc := range tests {
		res := mustDerive(t, sc)
		if len(res.HookOutputs) != 0 || len(res.Files) != 0 {
			t.Errorf("%s forced=%v: expected no hook assertions, got outputs=%v files=%v",
				sc.Category, sc.Forced, res.HookOutputs, res.Files)
		}
	}
}

func TestDerive_SkipIsNotAnError(t *testing.T) {
	res, err := Derive(scenario.Scenario{
		Profile:  alpine(),
		Category: profile.FakeNeeded,
		Preprep:  true,
	})
	if err != nil {
		t.Fatalf("skip must not be an error: %v", err)
	}
	if !res.Skip {
		t.Fatal("expected skip")
	}
}
