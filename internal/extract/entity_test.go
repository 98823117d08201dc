package extract

import "testing"

func TestEntityExtractor_Arbitrator(t *testing.T) {
	e := NewEntityExtractor()

	tests := []struct {
		query string
		want  string
	}{
		{"What are the outcomes for cases handled by John Smith?", "John Smith"},
		{"How many cases has Smith handled?", "Smith"},
		{"Cases decided by Jane Doe in 2020", "Jane Doe"},
		{"Show me cases for arbitrator Mary Williams", "Mary Williams"},
		{"Cases handled by Hon. John E. Smith Jr.", "John E Smith"},
		{"How many cases were filed?", ""},
	}

	for _, tt := range tests {
		got := e.Arbitrator(tt.query)
		if got != tt.want {
			t.Errorf("Arbitrator(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestEntityExtractor_Respondent(t *testing.T) {
	e := NewEntityExtractor()

	tests := []struct {
		query string
		want  string
	}{
		{"What are the outcomes for Bank of America as respondent?", "Bank of America"},
		{"Outcomes against Wells Fargo Bank", "Wells Fargo Bank"},
		{"Cases involving Acme Corp", "Acme Corp"},
		{"Show results for respondent Citibank", "Citibank"},
		{"What happened in cases with First National Financial?", "First National Financial"},
		{"How many cases were filed?", ""},
	}

	for _, tt := range tests {
		got := e.Respondent(tt.query)
		if got != tt.want {
			t.Errorf("Respondent(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestEntityExtractor_LengthBounds(t *testing.T) {
	e := NewEntityExtractor()

	// A single-letter capture is below the plausible-length floor.
	if got := e.Arbitrator("cases handled by X"); got != "" {
		t.Errorf("expected no arbitrator for single-letter capture, got %q", got)
	}
}

func TestCombinedQueryDetector(t *testing.T) {
	e := NewEntityExtractor()
	d := NewCombinedQueryDetector(e)

	t.Run("detects arbitrator and respondent pairing", func(t *testing.T) {
		arb, resp, ok := d.Detect("How did Smith rule in cases against Acme Corp?")
		if !ok {
			t.Fatal("expected detection to succeed")
		}
		if arb != "Smith" {
			t.Errorf("arbitrator = %q, want %q", arb, "Smith")
		}
		if resp != "Acme Corp" {
			t.Errorf("respondent = %q, want %q", resp, "Acme Corp")
		}
	})

	t.Run("requires ruling keyword", func(t *testing.T) {
		_, _, ok := d.Detect("Cases handled by Smith against Acme Corp")
		if ok {
			t.Error("expected detection to fail without a ruling keyword")
		}
	})

	t.Run("requires both names", func(t *testing.T) {
		_, _, ok := d.Detect("What did the arbitrator decide against the company?")
		if ok {
			t.Error("expected detection to fail when only one entity is found")
		}
	})
}
