package scam

import "testing"

func hasReason(w Warning, c Category) bool {
	for _, r := range w.Reasons {
		if r == c {
			return true
		}
	}
	return false
}

func TestAnalyzeScammyMessage(t *testing.T) {
	w := Analyze("Please send payment via PayPal now, urgent!!")

	if !w.IsScammy {
		t.Fatal("expected scammy classification")
	}
	if !hasReason(w, CategoryFinancialRequest) {
		t.Errorf("reasons %v missing financial-request", w.Reasons)
	}
	if !hasReason(w, CategoryUrgencyTactic) {
		t.Errorf("reasons %v missing urgency-tactic", w.Reasons)
	}
	if w.Severity != SeverityMedium && w.Severity != SeverityHigh {
		t.Errorf("severity = %q, want medium or high", w.Severity)
	}
}

func TestAnalyzeBenignMessage(t *testing.T) {
	w := Analyze("Let's meet at the library at 3pm")

	if w.IsScammy {
		t.Errorf("expected benign, got severity %q reasons %v", w.Severity, w.Reasons)
	}
	if len(w.Reasons) != 0 {
		t.Errorf("benign message must have no reasons, got %v", w.Reasons)
	}
}

func TestAnalyzeEmptyString(t *testing.T) {
	w := Analyze("")
	if w.IsScammy {
		t.Error("empty string must not be scammy")
	}
}

func TestAnalyzeSeverityThresholds(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    Severity
	}{
		{"one category", "share your singpass login", SeverityLow},
		{"two categories", "transfer money to me, this is urgent", SeverityMedium},
		{"three categories", "urgent! send money via bit.ly/abc for guaranteed returns", SeverityHigh},
	}

	for _, tc := range cases {
		w := Analyze(tc.content)
		if !w.IsScammy {
			t.Errorf("%s: expected scammy", tc.name)
			continue
		}
		if w.Severity != tc.want {
			t.Errorf("%s: severity = %q (reasons %v), want %q", tc.name, w.Severity, w.Reasons, tc.want)
		}
	}
}

func TestAnalyzeDeduplicatesCategories(t *testing.T) {
	// Two financial patterns in one message still count the category once.
	w := Analyze("send money to my paypal and also wire cash")
	count := 0
	for _, r := range w.Reasons {
		if r == CategoryFinancialRequest {
			count++
		}
	}
	if count != 1 {
		t.Errorf("financial-request counted %d times, want 1", count)
	}
	if w.Severity != SeverityLow {
		t.Errorf("severity = %q, want low for single category", w.Severity)
	}
}

func TestAnalyzeOffPlatformRedirect(t *testing.T) {
	w := Analyze("lets continue on whatsapp instead")
	if !hasReason(w, CategoryOffPlatformRedirect) {
		t.Errorf("reasons %v missing off-platform-redirect", w.Reasons)
	}
}
