package domain

import "testing"

func TestIsValidKind(t *testing.T) {
	valid := []string{"", KindInfo, KindSuccess, KindWarning, KindAction}
	for _, v := range valid {
		if !IsValidKind(v) {
			t.Errorf("IsValidKind(%q) = false, want true", v)
		}
	}

	invalid := []string{"bad", "INFO", "alert", " info"}
	for _, v := range invalid {
		if IsValidKind(v) {
			t.Errorf("IsValidKind(%q) = true, want false", v)
		}
	}
}
