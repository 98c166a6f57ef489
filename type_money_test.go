package tally

import "testing"

func TestMoney(t *testing.T) {
	if got := M(600).MulInt(2); !got.Equal(M(1200)) {
		t.Errorf("600*2 = %s, want 1200", got)
	}
	if got := M(1140).Sub(M(100)).Sub(M(1800)); !got.Equal(M(-760)) {
		t.Errorf("1140-100-1800 = %s, want -760", got)
	}
	if !M(-760).IsNegative() {
		t.Error("-760 should be negative")
	}
	if got := M(1800).Div(M(30)).IntPart(); got != 60 {
		t.Errorf("1800/30 = %d, want 60", got)
	}

	parsed, err := ParseMoney("100.50")
	if err != nil {
		t.Fatalf("ParseMoney failed: %v", err)
	}
	if !parsed.Equal(M(100.5)) {
		t.Errorf("parsed = %s, want 100.5", parsed)
	}
	if _, err := ParseMoney("not money"); err == nil {
		t.Error("ParseMoney accepted garbage")
	}
}

func TestMoney_PercentOf(t *testing.T) {
	roi := M(-760).PercentOf(M(1800))
	if want := Percent(-42.2222); !roi.Equal(want) {
		t.Errorf("-760 of 1800 = %s, want ~%s", roi, want)
	}
}

func TestMoney_Format(t *testing.T) {
	if got := M(1200).Format("USD"); got != "$1,200.00" {
		t.Errorf("Format = %q, want %q", got, "$1,200.00")
	}
}

func TestPercent_Strings(t *testing.T) {
	if got := Percent(-42.2222).String(); got != "-42.22%" {
		t.Errorf("String = %q", got)
	}
	if got := Percent(0).SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want %q", got, "-")
	}
	if got := Percent(5).SignedString(); got != "+5.00%" {
		t.Errorf("SignedString(5) = %q", got)
	}
}
