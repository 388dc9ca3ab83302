package credentials

import (
	"strings"
	"testing"
)

func strptr(s string) *string { return &s }

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		override    *string
		def         string
		wantValue   string
		wantPresent bool
	}{
		{"override wins over default", strptr("sk-123"), "sk-999", "sk-123", true},
		{"empty override falls through", strptr(""), "sk-999", "sk-999", true},
		{"missing override falls through", nil, "sk-999", "sk-999", true},
		{"override with no default", strptr("sk-123"), "", "sk-123", true},
		{"empty override with no default", strptr(""), "", "", false},
		{"both absent", nil, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov := Overrides{}
			if tt.override != nil {
				ov[OpenAI] = tt.override
			}
			def := Defaults{}
			if tt.def != "" {
				def[OpenAI] = tt.def
			}

			r := Resolve(ov, def)
			got, present := r.Lookup(OpenAI)
			if present != tt.wantPresent {
				t.Fatalf("present = %v, want %v", present, tt.wantPresent)
			}
			if got != tt.wantValue {
				t.Fatalf("value = %q, want %q", got, tt.wantValue)
			}
		})
	}
}

func TestResolveCoversRegistry(t *testing.T) {
	r := Resolve(
		Overrides{Tavily: strptr("tv-1")},
		Defaults{AlphaVantage: "av-1"},
	)

	if v, ok := r.Lookup(Tavily); !ok || v != "tv-1" {
		t.Fatalf("tavily = %q, %v", v, ok)
	}
	if r.Has(OpenAI) {
		t.Fatal("openai should be absent")
	}
	if v, ok := r.Lookup(AlphaVantage); !ok || v != "av-1" {
		t.Fatalf("alpha_vantage = %q, %v", v, ok)
	}
}

func TestResolvedStringRedacts(t *testing.T) {
	r := Resolve(Overrides{OpenAI: strptr("sk-super-secret")}, Defaults{})

	s := r.String()
	if strings.Contains(s, "sk-super-secret") {
		t.Fatalf("String() leaked a secret: %s", s)
	}
	if !strings.Contains(s, "openai=set") || !strings.Contains(s, "tavily=absent") {
		t.Fatalf("unexpected rendering: %s", s)
	}
}

func TestZeroValueResolved(t *testing.T) {
	var r Resolved
	if r.Has(Tavily) {
		t.Fatal("zero value must report absent")
	}
	if _, ok := r.Lookup(OpenAI); ok {
		t.Fatal("zero value must report absent")
	}
}
