package period

import "testing"

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label     string
		wantMonth int
		wantYear  int
		wantErr   bool
	}{
		{label: "2025-10", wantMonth: 10, wantYear: 2025},
		{label: " 2024-01 ", wantMonth: 1, wantYear: 2024},
		{label: "2025-13", wantErr: true},
		{label: "2025-1", wantErr: true},
		{label: "October", wantErr: true},
	}

	for _, tc := range tests {
		month, year, err := ParseLabel(tc.label)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for label %q", tc.label)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse label %q: %v", tc.label, err)
		}
		if month != tc.wantMonth || year != tc.wantYear {
			t.Fatalf("label %q: got month=%d year=%d", tc.label, month, year)
		}
	}
}

func TestLabelOf(t *testing.T) {
	label, err := LabelOf("2025-10-07")
	if err != nil {
		t.Fatalf("label of date: %v", err)
	}
	if label != "2025-10" {
		t.Fatalf("unexpected label: %s", label)
	}

	if _, err := LabelOf("2025-02-30"); err == nil {
		t.Fatalf("expected error for impossible date")
	}
}

func TestCookingDateValidate(t *testing.T) {
	if err := (CookingDate{ID: "d1", Period: "2025-10", Date: "2025-10-03"}).Validate(); err != nil {
		t.Fatalf("expected valid cooking date, got %v", err)
	}
	if err := (CookingDate{ID: "d1", Period: "2025-11", Date: "2025-10-03"}).Validate(); err == nil {
		t.Fatalf("expected period mismatch error")
	}
}
