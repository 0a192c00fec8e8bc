package litparse

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		input               string
		year, month, day    int
		wantErr             bool
	}{
		{"2024-03-30", 2024, 3, 30, false},
		{"-0044-03-15", -44, 3, 15, false},
		{"2024-13-01", 2024, 13, 1, false}, // range validation is the Value Store's job, not the scanner's
		{"not-a-date", 0, 0, 0, true},
	}

	for i, tt := range tests {
		got, err := ParseDate(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("tests[%d]: expected error, got none", i)
			}

			continue
		}
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if got.Year != tt.year || got.Month != tt.month || got.Day != tt.day {
			t.Errorf("tests[%d]: got %+v, want {%d %d %d}", i, got, tt.year, tt.month, tt.day)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input                       string
		hour, minute, second, milli int
	}{
		{"13:45:00", 13, 45, 0, 0},
		{"00:00:00.5", 0, 0, 0, 500},
		{"23:59:59.05", 23, 59, 59, 50},
		{"01:02:03.123", 1, 2, 3, 123},
	}

	for i, tt := range tests {
		got, err := ParseTime(tt.input)
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if got.Hour != tt.hour || got.Minute != tt.minute || got.Second != tt.second || got.Millisecond != tt.milli {
			t.Errorf("tests[%d]: got %+v, want {%d %d %d %d}", i, got, tt.hour, tt.minute, tt.second, tt.milli)
		}
	}
}

func TestParseDateTimeBothSeparators(t *testing.T) {
	for _, input := range []string{"2024-03-30 13:45:00", "2024-03-30T13:45:00"} {
		got, err := ParseDateTime(input)
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", input, err)
		}
		if got.Year != 2024 || got.Month != 3 || got.Day != 30 || got.Hour != 13 || got.Minute != 45 {
			t.Errorf("input %q: got %+v", input, got)
		}
	}
}

func TestParseMoneyTruncatesTowardZero(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"$123.45", 1234500},
		{"$0.009", 0},      // third fractional digit discarded, not rounded
		{"$1.999", 19900},  // truncates to 1.99, not 2.00
		{"-$5.00", -50000},
		{"$-5.00", -50000},
	}

	for i, tt := range tests {
		got, err := ParseMoney(tt.input)
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if got.AmountSubunits != tt.want {
			t.Errorf("tests[%d]: got %d, want %d", i, got.AmountSubunits, tt.want)
		}
	}
}
