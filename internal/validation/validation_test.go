package validation

import (
	"context"
	"encoding/json"
	"testing"
)

func validSubmission() map[string]any {
	return map[string]any{
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"email":          "ada@example.com",
		"country":        "GB",
		"linkedinUrl":    "https://linkedin.com/in/ada",
		"visaCategories": []string{"O-1"},
	}
}

func check(t *testing.T, payload map[string]any) FieldErrors {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return CheckLeadSubmission(context.Background(), raw)
}

func TestCheckLeadSubmission_Valid(t *testing.T) {
	if fe := check(t, validSubmission()); fe != nil {
		t.Fatalf("valid payload rejected: %v", fe)
	}
}

func TestCheckLeadSubmission_ValidWithOptionals(t *testing.T) {
	p := validSubmission()
	p["additionalInfo"] = "please help with my case"
	p["resumePath"] = "/uploads/123-abc.pdf"
	p["resumeOriginalName"] = "resume.pdf"
	if fe := check(t, p); fe != nil {
		t.Fatalf("payload with optionals rejected: %v", fe)
	}
}

func TestCheckLeadSubmission_MissingRequiredFields(t *testing.T) {
	for _, field := range []string{"firstName", "lastName", "email", "country", "linkedinUrl", "visaCategories"} {
		p := validSubmission()
		delete(p, field)
		if fe := check(t, p); fe == nil {
			t.Errorf("payload without %s accepted", field)
		}
	}
}

func TestCheckLeadSubmission_EmptyVisaCategories(t *testing.T) {
	p := validSubmission()
	p["visaCategories"] = []string{}
	if fe := check(t, p); fe == nil {
		t.Fatal("empty visa category set accepted")
	}
}

func TestCheckLeadSubmission_UnknownVisaCategory(t *testing.T) {
	p := validSubmission()
	p["visaCategories"] = []string{"H-1B"}
	if fe := check(t, p); fe == nil {
		t.Fatal("unknown visa category accepted")
	}
}

func TestCheckLeadSubmission_BadEmail(t *testing.T) {
	p := validSubmission()
	p["email"] = "not-an-email"
	fe := check(t, p)
	if fe == nil {
		t.Fatal("bad email accepted")
	}
	if _, ok := fe["email"]; !ok {
		t.Fatalf("expected error keyed on email, got %v", fe)
	}
}

func TestCheckLeadSubmission_BadURL(t *testing.T) {
	p := validSubmission()
	p["linkedinUrl"] = "notaurl"
	fe := check(t, p)
	if fe == nil {
		t.Fatal("bad URL accepted")
	}
	if _, ok := fe["linkedinUrl"]; !ok {
		t.Fatalf("expected error keyed on linkedinUrl, got %v", fe)
	}
}

func TestCheckLeadSubmission_NotJSON(t *testing.T) {
	if fe := CheckLeadSubmission(context.Background(), []byte("not json")); fe == nil {
		t.Fatal("non-JSON body accepted")
	}
}
