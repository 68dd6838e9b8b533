package engine

import (
	"testing"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

func TestMatchPhoneTurkishMobile(t *testing.T) {
	e := New(Options{})
	for _, text := range []string{
		"Beni ara: 0532 123 45 67",
		"Numaram +90 532 123 45 67",
		"05321234567 yaz bana",
		"532-123-4567",
	} {
		got := e.matchPhone(text)
		if len(got) != 1 {
			t.Fatalf("expected 1 violation for %q, got %d: %v", text, len(got), got)
		}
		if got[0].Severity != models.SeverityHigh {
			t.Fatalf("expected high severity for %q, got %v", text, got[0].Severity)
		}
	}
}

func TestMatchPhoneTurkishLandline(t *testing.T) {
	e := New(Options{})
	got := e.matchPhone("Ofis: 0212 345 67 89")
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(got), got)
	}
}

func TestMatchPhoneUSFormats(t *testing.T) {
	e := New(Options{})
	for _, text := range []string{
		"call (212) 555-0178 today",
		"call 212-555-0178 today",
		"call 212.555.0178 today",
	} {
		if got := e.matchPhone(text); len(got) != 1 {
			t.Fatalf("expected 1 violation for %q, got %d", text, len(got))
		}
	}
}

func TestMatchPhoneInternational(t *testing.T) {
	e := New(Options{})
	if got := e.matchPhone("reach me at +44 20 7946 0958"); len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(got))
	}
}

func TestMatchPhoneOneNumberOneViolation(t *testing.T) {
	e := New(Options{})
	// Several sub-patterns can match the same digits; overlapping spans
	// must collapse into a single report.
	got := e.matchPhone("+90 532 123 45 67")
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(got), got)
	}
}

func TestMatchPhoneIgnoresShortNumbers(t *testing.T) {
	e := New(Options{})
	for _, text := range []string{"oda 1234", "saat 12 45", "2024 yılında"} {
		if got := e.matchPhone(text); len(got) != 0 {
			t.Fatalf("false positive on %q: %v", text, got)
		}
	}
}

func TestScanSpelledDigitsSevenTriggers(t *testing.T) {
	got := scanSpelledDigits("beş üç iki bir dört beş altı")
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(got), got)
	}
	if got[0].Severity != models.SeverityHigh {
		t.Fatalf("expected high severity, got %v", got[0].Severity)
	}
}

func TestScanSpelledDigitsSixStaysSilent(t *testing.T) {
	if got := scanSpelledDigits("beş üç iki bir dört beş"); len(got) != 0 {
		t.Fatalf("six digit words must not trigger, got %v", got)
	}
}

func TestScanSpelledDigitsEnglish(t *testing.T) {
	got := scanSpelledDigits("five five five one two three four")
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(got), got)
	}
}

func TestScanSpelledDigitsInterruptedRunResets(t *testing.T) {
	if got := scanSpelledDigits("beş üç iki sonra bir dört beş altı"); len(got) != 0 {
		t.Fatalf("interrupted run must not trigger, got %v", got)
	}
}

func TestScanSpelledDigitsSpanCoversRun(t *testing.T) {
	text := "ara beni five five five one two three four tamam"
	got := scanSpelledDigits(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(got))
	}
	if text[got[0].Span.Start:got[0].Span.End] != "five five five one two three four" {
		t.Fatalf("unexpected span %q", text[got[0].Span.Start:got[0].Span.End])
	}
}
