package request

import "testing"

func TestStatusLabels(t *testing.T) {
	cases := []struct {
		code  Status
		label string
	}{
		{StatusInitialReview, "Initial Review"},
		{StatusPendingDocumentation, "Pending Documentation"},
		{StatusUnderEvaluation, "Under Evaluation"},
		{StatusPreApproved, "Pre-Approved"},
		{StatusFinalApproval, "Final Approval"},
		{StatusApproved, "Approved"},
		{StatusRejected, "Rejected"},
		{StatusCancelledByClient, "Cancelled by Client"},
		{StatusInDisbursement, "In Disbursement"},
	}
	for _, tc := range cases {
		if !tc.code.Valid() {
			t.Fatalf("%s should be valid", tc.code)
		}
		if got := tc.code.Label(); got != tc.label {
			t.Fatalf("%s label = %q, want %q", tc.code, got, tc.label)
		}
	}

	for _, bad := range []Status{"", "E0", "E10", "Approved"} {
		if bad.Valid() {
			t.Fatalf("%q should not be valid", bad)
		}
		if bad.Label() != "" {
			t.Fatalf("%q should have empty label", bad)
		}
	}
}

func TestRequiredDocuments(t *testing.T) {
	cases := []struct {
		cat  Category
		want int
	}{
		{CategoryFirstHome, 5},
		{CategorySecondHome, 6},
		{CategoryCommercialProperty, 6},
		{CategoryRemodeling, 5},
	}
	for _, tc := range cases {
		if got := RequiredDocuments(tc.cat); len(got) != tc.want {
			t.Fatalf("%s requires %d documents, want %d", tc.cat, len(got), tc.want)
		}
	}
	if RequiredDocuments("boat") != nil {
		t.Fatalf("unknown category should have no document set")
	}
	if Category("boat").Valid() {
		t.Fatalf("unknown category should not be valid")
	}
}
