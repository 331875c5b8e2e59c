package grading

import "github.com/craigbalding/sandboxscore/pkg/policy"

// CapRule floors the final grade at Cap when its test name has at least
// one exposed finding. A rule with OnlyProfile set triggers only when
// that profile is the one being evaluated. Caps are read-only policy:
// they can make a grade worse or leave it unchanged, never better.
type CapRule struct {
	TestName    string
	Cap         Grade
	OnlyProfile policy.Profile // empty means any profile
	Reason      string
}

var capRules = []CapRule{
	{TestName: "ssh_keys", Cap: GradeB, Reason: "SSH private keys readable"},
	{TestName: "aws_credentials", Cap: GradeC, Reason: "AWS credentials readable"},
	{TestName: "gcp_credentials", Cap: GradeC, Reason: "GCP credentials readable"},
	{TestName: "azure_credentials", Cap: GradeC, Reason: "Azure credentials readable"},
	{TestName: "contacts", Cap: GradeC, OnlyProfile: policy.ProfileSensitive, Reason: "personal contacts readable under sensitive profile"},
}

// CapRules returns the static cap table.
func CapRules() []CapRule {
	out := make([]CapRule, len(capRules))
	copy(out, capRules)
	return out
}

// AppliedCap records one triggered cap rule. A cap that did not change
// the final grade is still listed so the reasons remain explainable.
type AppliedCap struct {
	TestName string `json:"test_name"`
	Cap      Grade  `json:"cap"`
	Reason   string `json:"reason"`
}
