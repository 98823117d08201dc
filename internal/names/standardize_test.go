package names

import "testing"

func TestStandardizer_StripsHonorifics(t *testing.T) {
	s := NewStandardizer()

	tests := []struct {
		input string
		want  string
	}{
		{"Hon. John Smith", "John Smith"},
		{"Dr. Jane Doe", "Jane Doe"},
		{"Judge Mary Williams", "Mary Williams"},
		{"Professor Alan Turing", "Alan Turing"},
		{"Mr. Bob Jones", "Bob Jones"},
	}

	for _, tt := range tests {
		got := s.Standardize(tt.input)
		if got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStandardizer_StripsSuffixes(t *testing.T) {
	s := NewStandardizer()

	tests := []struct {
		input string
		want  string
	}{
		{"John Smith Jr.", "John Smith"},
		{"John Smith Esq.", "John Smith"},
		{"John Smith III", "John Smith"},
		{"Jane Doe MD", "Jane Doe"},
		{"Jane Doe PhD", "Jane Doe"},
	}

	for _, tt := range tests {
		got := s.Standardize(tt.input)
		if got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStandardizer_ReducesMiddleTokens(t *testing.T) {
	s := NewStandardizer()

	tests := []struct {
		input string
		want  string
	}{
		{"John Edward Smith", "John E Smith"},
		{"John E. Smith", "John E Smith"},
		{"Hon. John Edward Smith Jr.", "John E Smith"},
		{"Mary Anne Louise Carter", "Mary A L Carter"},
	}

	for _, tt := range tests {
		got := s.Standardize(tt.input)
		if got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStandardizer_KeepsConnectors(t *testing.T) {
	s := NewStandardizer()

	tests := []struct {
		input string
		want  string
	}{
		{"Ludwig van Beethoven", "Ludwig van Beethoven"},
		{"Oscar de la Hoya", "Oscar de la Hoya"},
		{"Maria von der Leyen", "Maria von der Leyen"},
	}

	for _, tt := range tests {
		got := s.Standardize(tt.input)
		if got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStandardizer_ShortNamesUnchanged(t *testing.T) {
	s := NewStandardizer()

	tests := []struct {
		input string
		want  string
	}{
		{"Smith", "Smith"},
		{"John Smith", "John Smith"},
		{"  John   Smith  ", "John Smith"}, // whitespace collapsed
		{"", ""},
	}

	for _, tt := range tests {
		got := s.Standardize(tt.input)
		if got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStandardizer_Idempotent(t *testing.T) {
	s := NewStandardizer()

	inputs := []string{
		"Hon. John Edward Smith Jr.",
		"Dr. Jane Marie Doe PhD",
		"Oscar de la Hoya",
		"Smith",
		"John Smith",
		"Mary Anne Louise Carter",
		"",
	}

	for _, input := range inputs {
		once := s.Standardize(input)
		twice := s.Standardize(once)
		if once != twice {
			t.Errorf("Standardize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
