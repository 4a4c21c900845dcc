package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		input   string
		want    OrderStatus
		wantErr bool
	}{
		{"pending", OrderStatusPending, false},
		{"processing", OrderStatusProcessing, false},
		{"installed/shipped", OrderStatusInstalled, false},
		{"rejected", OrderStatusRejected, false},
		{"  Pending  ", OrderStatusPending, false},
		{"INSTALLED/SHIPPED", OrderStatusInstalled, false},
		{"installed", "", true},
		{"shipped", "", true},
		{"", "", true},
		{"cancelled", "", true},
	}

	for _, tc := range cases {
		got, err := ParseOrderStatus(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseOrderStatus(%q): expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseOrderStatus(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestOrderStatusTerminality(t *testing.T) {
	if OrderStatusPending.IsTerminal() || OrderStatusProcessing.IsTerminal() {
		t.Fatalf("pending and processing are not terminal")
	}
	if !OrderStatusInstalled.IsTerminal() || !OrderStatusRejected.IsTerminal() {
		t.Fatalf("installed/shipped and rejected are terminal")
	}
}

func TestOrderStatusLoggedMatchesTerminal(t *testing.T) {
	for _, status := range validOrderStatuses {
		if status.IsLogged() != status.IsTerminal() {
			t.Fatalf("%q: IsLogged and IsTerminal disagree", status)
		}
	}
}

func TestValidOrderStatusValues(t *testing.T) {
	values := ValidOrderStatusValues()
	if len(values) != 4 {
		t.Fatalf("expected 4 statuses, got %v", values)
	}
}
