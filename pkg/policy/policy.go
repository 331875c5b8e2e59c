// Package policy holds the risk-context profiles and the severity rules
// that reinterpret a probe's base severity under each profile. Every
// function here is pure so cross-profile projection can call them with a
// substituted profile and no side effects.
package policy

import (
	"fmt"
	"strings"
)

// Profile is the operator's risk context. Exactly one is active for a
// scan, but scoring accepts any profile as an explicit parameter.
type Profile string

const (
	ProfilePersonal     Profile = "personal"
	ProfileProfessional Profile = "professional"
	ProfileSensitive    Profile = "sensitive"
)

// Profiles returns all known profiles in display order.
func Profiles() []Profile {
	return []Profile{ProfilePersonal, ProfileProfessional, ProfileSensitive}
}

// ParseProfile normalizes a profile name. An unknown name is a
// configuration error, never a silent default.
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case ProfilePersonal:
		return ProfilePersonal, nil
	case ProfileProfessional:
		return ProfileProfessional, nil
	case ProfileSensitive:
		return ProfileSensitive, nil
	}
	return "", fmt.Errorf("unknown profile %q (want personal, professional or sensitive)", s)
}

// Severity is the qualitative risk weight attached to a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
	SeverityIgnore   Severity = "ignore"
)

// personalIgnores lists data the operator owns outright: reading your own
// contacts on your own machine is not an exposure.
var personalIgnores = map[string]bool{
	"contacts":        true,
	"messages":        true,
	"browser_history": true,
	"photos":          true,
}

// professionalOverrides assumes client data may be involved but does not
// presume full severity.
var professionalOverrides = map[string]Severity{
	"contacts": SeverityMedium,
	"messages": SeverityMedium,
}

// EffectiveSeverity maps a probe's base severity to the severity that
// counts under the given profile. Sensitive applies no overrides.
func EffectiveSeverity(testName string, base Severity, p Profile) Severity {
	switch p {
	case ProfilePersonal:
		if personalIgnores[testName] {
			return SeverityIgnore
		}
	case ProfileProfessional:
		if sev, ok := professionalOverrides[testName]; ok {
			return sev
		}
	}
	return base
}

// Points is the fixed severity-to-points table. Severities outside the
// table score zero.
func Points(s Severity) int {
	switch s {
	case SeverityCritical:
		return 50
	case SeverityHigh:
		return 20
	case SeverityMedium:
		return 5
	case SeverityLow:
		return 1
	}
	return 0
}
