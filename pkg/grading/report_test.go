package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craigbalding/sandboxscore/pkg/findings"
	"github.com/craigbalding/sandboxscore/pkg/policy"
)

func exposed(category, test string, base policy.Severity) findings.Finding {
	return findings.Finding{
		Category:     category,
		TestName:     test,
		Status:       findings.StatusExposed,
		BaseSeverity: base,
	}
}

func TestEmptyStoreIsCleanForEveryProfile(t *testing.T) {
	for _, p := range policy.Profiles() {
		r := Compute(nil, p)
		assert.Equal(t, 0, r.TotalPoints, p)
		assert.Equal(t, 0, r.Exposures, p)
		assert.Equal(t, GradeAPlus, r.BaseGrade, p)
		assert.Equal(t, GradeAPlus, r.FinalGrade, p)
		assert.Empty(t, r.AppliedCaps, p)
	}
}

func TestReportAlwaysCarriesFixedCategories(t *testing.T) {
	r := Compute(nil, policy.ProfilePersonal)
	for _, cat := range findings.Categories() {
		cs, ok := r.Categories[cat]
		require.True(t, ok, cat)
		assert.Equal(t, GradeAPlus, cs.Grade, cat)
	}
}

// One exposed SSH key scores 50 points, a base grade of C. The ssh_keys
// cap floors the grade at B, and C is already worse than B, so the
// final grade stays C: the cap is a floor, never a ceiling.
func TestSSHKeysCapIsAFloorNotACeiling(t *testing.T) {
	fs := []findings.Finding{exposed("credentials", "ssh_keys", policy.SeverityCritical)}

	r := Compute(fs, policy.ProfilePersonal)
	assert.Equal(t, 50, r.TotalPoints)
	assert.Equal(t, GradeC, r.BaseGrade)
	require.Len(t, r.AppliedCaps, 1)
	assert.Equal(t, "ssh_keys", r.AppliedCaps[0].TestName)
	assert.Equal(t, GradeB, r.AppliedCaps[0].Cap)
	assert.Equal(t, GradeC, r.FinalGrade, "a cap can never improve the grade")
}

func TestSSHKeysCapVisibleWhenBaseIsBetter(t *testing.T) {
	// One low exposure plus the key exposure recorded as low severity:
	// base grade A, cap floors it at B.
	fs := []findings.Finding{exposed("credentials", "ssh_keys", policy.SeverityLow)}

	r := Compute(fs, policy.ProfilePersonal)
	assert.Equal(t, GradeA, r.BaseGrade)
	assert.Equal(t, GradeB, r.FinalGrade)
}

func TestContactsAcrossProfiles(t *testing.T) {
	fs := []findings.Finding{exposed("personal_data", "contacts", policy.SeverityHigh)}

	// personal: own data, ignored entirely.
	personal := Compute(fs, policy.ProfilePersonal)
	assert.Equal(t, 0, personal.TotalPoints)
	assert.Equal(t, GradeAPlus, personal.BaseGrade)
	assert.Equal(t, GradeAPlus, personal.FinalGrade)
	assert.Empty(t, personal.AppliedCaps)

	// sensitive: full severity plus the contacts cap. 20 points is a
	// base grade of B (11-30 band).
	sensitive := ProjectUnder(fs, policy.ProfileSensitive)
	assert.Equal(t, 20, sensitive.TotalPoints)
	assert.Equal(t, GradeB, sensitive.BaseGrade)
	require.Len(t, sensitive.AppliedCaps, 1)
	assert.Equal(t, GradeC, sensitive.FinalGrade)

	// professional: forced to medium, no cap.
	professional := ProjectUnder(fs, policy.ProfileProfessional)
	assert.Equal(t, 5, professional.TotalPoints)
	assert.Empty(t, professional.AppliedCaps)
}

func TestCloudCredentialCaps(t *testing.T) {
	for _, test := range []string{"aws_credentials", "gcp_credentials", "azure_credentials"} {
		fs := []findings.Finding{exposed("credentials", test, policy.SeverityLow)}
		r := Compute(fs, policy.ProfilePersonal)
		assert.Equal(t, GradeC, r.FinalGrade, test)
	}
}

func TestCapNeedsAnExposedFinding(t *testing.T) {
	fs := []findings.Finding{{
		Category:     "credentials",
		TestName:     "ssh_keys",
		Status:       findings.StatusBlocked,
		BaseSeverity: policy.SeverityCritical,
	}}
	r := Compute(fs, policy.ProfilePersonal)
	assert.Empty(t, r.AppliedCaps)
	assert.Equal(t, GradeAPlus, r.FinalGrade)
}

func TestGradeThresholds(t *testing.T) {
	tests := []struct {
		points int
		want   Grade
	}{
		{0, GradeAPlus},
		{1, GradeA}, {10, GradeA},
		{11, GradeB}, {30, GradeB},
		{31, GradeC}, {60, GradeC},
		{61, GradeD}, {100, GradeD},
		{101, GradeF}, {500, GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromPoints(tt.points), "points=%d", tt.points)
	}
}

func TestGradeOrdering(t *testing.T) {
	order := []Grade{GradeAPlus, GradeA, GradeB, GradeC, GradeD, GradeF}
	for i := 0; i < len(order)-1; i++ {
		assert.Equal(t, -1, Compare(order[i], order[i+1]), "%s < %s", order[i], order[i+1])
	}
	// Unrecognized grades sort as maximally bad.
	assert.Equal(t, 1, Compare(Grade("Z"), GradeF))
	assert.Equal(t, GradeF, WorseOf(GradeB, GradeF))
	assert.Equal(t, GradeF, WorseOf(GradeF, GradeB))
}

func TestCapMonotonicity(t *testing.T) {
	fs := []findings.Finding{
		exposed("credentials", "ssh_keys", policy.SeverityCritical),
		exposed("credentials", "aws_credentials", policy.SeverityCritical),
		exposed("personal_data", "contacts", policy.SeverityHigh),
	}
	for _, p := range policy.Profiles() {
		r := Compute(fs, p)
		assert.GreaterOrEqual(t, Compare(r.FinalGrade, r.BaseGrade), 0,
			"profile %s: final grade must not be better than base", p)
	}
}

func TestComputeIsPure(t *testing.T) {
	fs := []findings.Finding{
		exposed("credentials", "ssh_keys", policy.SeverityCritical),
		exposed("network", "interfaces", policy.SeverityLow),
	}
	first := Compute(fs, policy.ProfileSensitive)
	second := Compute(fs, policy.ProfileSensitive)
	assert.Equal(t, first, second)
}

func TestProjectionIdempotentForActiveProfile(t *testing.T) {
	fs := []findings.Finding{
		exposed("personal_data", "contacts", policy.SeverityHigh),
		exposed("credentials", "ssh_keys", policy.SeverityCritical),
	}
	assert.Equal(t,
		Compute(fs, policy.ProfileProfessional),
		ProjectUnder(fs, policy.ProfileProfessional))
}

func TestPerCategoryAccumulation(t *testing.T) {
	fs := []findings.Finding{
		exposed("credentials", "ssh_keys", policy.SeverityCritical),
		exposed("network", "interfaces", policy.SeverityLow),
		exposed("network", "listening_ports", policy.SeverityLow),
	}
	r := Compute(fs, policy.ProfileSensitive)
	assert.Equal(t, 50, r.Categories["credentials"].Points)
	assert.Equal(t, 2, r.Categories["network"].Points)
	assert.Equal(t, 52, r.TotalPoints)
	assert.Equal(t, 3, r.Exposures)
}

func TestCrossProfile(t *testing.T) {
	fs := []findings.Finding{exposed("personal_data", "contacts", policy.SeverityHigh)}
	cross := CrossProfile(fs)
	assert.Equal(t, GradeAPlus, cross[policy.ProfilePersonal])
	assert.Equal(t, GradeA, cross[policy.ProfileProfessional])
	assert.Equal(t, GradeC, cross[policy.ProfileSensitive])
}
