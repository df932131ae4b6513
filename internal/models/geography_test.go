// ABOUTME: Tests for GeographyKind parsing and validation
// ABOUTME: Verifies case-insensitive parsing and the metro shorthand

package models

import "testing"

func TestGeographyKind_Valid(t *testing.T) {
	tests := []struct {
		name string
		kind GeographyKind
		want bool
	}{
		{"National", National, true},
		{"State", State, true},
		{"Metropolitan", Metropolitan, true},
		{"empty string", GeographyKind(""), false},
		{"lowercase is not canonical", GeographyKind("state"), false},
		{"county", GeographyKind("County"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseGeographyKind(t *testing.T) {
	tests := []struct {
		input   string
		want    GeographyKind
		wantErr bool
	}{
		{"National", National, false},
		{"national", National, false},
		{" STATE ", State, false},
		{"Metropolitan", Metropolitan, false},
		{"metro", Metropolitan, false},
		{"", "", true},
		{"county", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGeographyKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGeographyKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseGeographyKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGeographyKinds_Order(t *testing.T) {
	kinds := GeographyKinds()
	want := []GeographyKind{National, State, Metropolitan}
	if len(kinds) != len(want) {
		t.Fatalf("len(GeographyKinds()) = %d, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("GeographyKinds()[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}
