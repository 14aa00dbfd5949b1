package normalize

import "testing"

func TestDateTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace_only", in: "   ", want: ""},
		{name: "tabs_and_newlines_only", in: "\t\n ", want: ""},
		{name: "already_clean", in: "14-03-2021 10:30", want: "14-03-2021 10:30"},
		{name: "quoted_fraction_newline", in: "\"14-03-2021 10:30.500\"\n", want: "14-03-2021 10:30"},
		{name: "missing_separator", in: "14-03-202110:30", want: "14-03-2021 10:30"},
		{name: "missing_separator_with_fraction", in: "14-03-202110:30.1", want: "14-03-2021 10:30"},
		{name: "embedded_newline", in: "14-03-2021\n10:30", want: "14-03-2021 10:30"},
		{name: "surrounding_spaces", in: "  01-01-2020 00:00  ", want: "01-01-2020 00:00"},
		{name: "only_one_fraction_removed", in: "14-03-2021 10:30.5.6", want: "14-03-2021 10:30.5"},
		{name: "dot_without_digits_kept", in: "14-03-2021 10:30.", want: "14-03-2021 10:30."},
		{name: "no_calendar_validation", in: "40-13-202199:99", want: "40-13-2021 99:99"},
		{name: "unknown_shape_passthrough", in: "yesterday", want: "yesterday"},
		{name: "date_only", in: "14-03-2021", want: "14-03-2021"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DateTime(tt.in); got != tt.want {
				t.Fatalf("DateTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestDateTime_Idempotent checks that a second pass over already cleaned
// values is a no-op.
func TestDateTime_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"\"14-03-2021 10:30.500\"\n",
		"14-03-202110:30",
		"14-03-2021 10:30",
		"garbage \"value\"",
		"2021-03-14T10:30:00.000",
	}
	for _, in := range inputs {
		once := DateTime(in)
		if twice := DateTime(once); twice != once {
			t.Fatalf("DateTime not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace_only", in: "  ", want: ""},
		{name: "decimal_comma", in: "12,5", want: "12.5"},
		{name: "negative_decimal_comma", in: "-3,14", want: "-3.14"},
		{name: "quoted_decimal_comma", in: " \"7,25\" ", want: "7.25"},
		{name: "multiple_commas_unchanged", in: "1,2,3", want: "1,2,3"},
		{name: "thousands_separator_unchanged", in: "1.234,5", want: "1.234,5"},
		{name: "letters_unchanged", in: "12,5a", want: "12,5a"},
		{name: "leading_comma_unchanged", in: ",5", want: ",5"},
		{name: "trailing_comma_unchanged", in: "5,", want: "5,"},
		{name: "period_decimal_kept", in: "12.5", want: "12.5"},
		{name: "code_trimmed", in: "  POS ", want: "POS"},
		{name: "plus_sign_unchanged", in: "+1,5", want: "+1,5"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Value(tt.in); got != tt.want {
				t.Fatalf("Value(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHeaderDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"2021-03-14", "14-03-2021"},
		{" 2021-03-14 ", "14-03-2021"},
		{"5-6-2021", "05-06-2021"},
		{"15-6-2021", "15-06-2021"},
		{"5-11-2021", "05-11-2021"},
		{"14-03-2021", "14-03-2021"},
		{"1-4-2021", "01-04-2021"},
		{"not-a-date", "not-a-date"},
		{"2021-3-14", "2021-3-14"},
		{"5-6-21", "5-6-21"},
		{"123-6-2021", "123-6-2021"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := HeaderDate(tt.in); got != tt.want {
			t.Errorf("HeaderDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"compact_ok", IsCompactDateTime, "14-03-202110:30", true},
		{"compact_with_space", IsCompactDateTime, "14-03-2021 10:30", false},
		{"compact_short", IsCompactDateTime, "4-03-202110:30", false},
		{"iso_ok", IsISODate, "2021-03-14", true},
		{"iso_letters", IsISODate, "2021-0a-14", false},
		{"dmy_single_digits", IsDayMonthYear, "1-2-2021", true},
		{"dmy_double_digits", IsDayMonthYear, "01-02-2021", true},
		{"dmy_iso_rejected", IsDayMonthYear, "2021-03-14", false},
		{"dmy_empty_part", IsDayMonthYear, "-2-2021", false},
		{"comma_ok", IsDecimalComma, "0,1", true},
		{"comma_negative", IsDecimalComma, "-0,1", true},
		{"comma_double_minus", IsDecimalComma, "--0,1", false},
		{"comma_none", IsDecimalComma, "12", false},
	}

	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Errorf("%s: got %v for %q, want %v", c.name, got, c.in, c.want)
		}
	}
}

func TestTrimFractionalSeconds(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"10:30.500": "10:30",
		"10:30":     "10:30",
		"10:30.":    "10:30.",
		"10:30.5x":  "10:30.5x",
		".5":        "",
		"":          "",
	}
	for in, want := range tests {
		if got := TrimFractionalSeconds(in); got != want {
			t.Errorf("TrimFractionalSeconds(%q) = %q, want %q", in, got, want)
		}
	}
}
