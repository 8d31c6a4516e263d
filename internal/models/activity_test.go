package models

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{
			name:  "valid range",
			start: date(2024, 1, 1),
			end:   date(2024, 1, 31),
		},
		{
			name:  "single day",
			start: date(2024, 1, 15),
			end:   date(2024, 1, 15),
		},
		{
			name:    "start after end",
			start:   date(2024, 2, 1),
			end:     date(2024, 1, 1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateRange(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	window, err := NewDateRange(date(2024, 1, 1), date(2024, 1, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"inside", date(2024, 1, 15), true},
		{"start boundary", date(2024, 1, 1), true},
		{"end boundary", date(2024, 1, 31), true},
		{"before", date(2023, 12, 31), false},
		{"after", date(2024, 2, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestRepositorySummary(t *testing.T) {
	tests := []struct {
		name string
		repo Repository
		want string
	}{
		{
			name: "first readme line",
			repo: Repository{Readme: "A CLI tool.\nMore detail below.", Description: "desc"},
			want: "A CLI tool.",
		},
		{
			name: "skips heading markers and blank lines",
			repo: Repository{Readme: "\n# my-tool\n\nDoes a thing.\n"},
			want: "my-tool",
		},
		{
			name: "falls back to description",
			repo: Repository{Description: "A github description"},
			want: "A github description",
		},
		{
			name: "falls back to placeholder",
			repo: Repository{},
			want: FallbackSummary,
		},
		{
			name: "whitespace-only readme",
			repo: Repository{Readme: "  \n\t\n"},
			want: FallbackSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.repo.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
			if tt.repo.Summary() == "" {
				t.Error("Summary() must never be empty")
			}
		})
	}
}

func TestCommitShortMessage(t *testing.T) {
	c := Commit{Message: "fix bug\n\nlong body explaining the fix"}
	if got := c.ShortMessage(); got != "fix bug" {
		t.Errorf("ShortMessage() = %q, want %q", got, "fix bug")
	}
}

func TestPartition(t *testing.T) {
	repos := []Repository{
		{Name: "tool", FullName: "alice/tool"},
		{Name: "webapp", FullName: "alice/webapp"},
		{Name: "dotfiles", FullName: "alice/dotfiles"},
	}

	t.Run("by short name", func(t *testing.T) {
		spotlight, other, err := Partition(repos, []string{"tool"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(spotlight) != 1 || spotlight[0].Name != "tool" {
			t.Errorf("unexpected spotlight set: %+v", spotlight)
		}
		if !spotlight[0].Spotlight {
			t.Error("spotlight repo should have Spotlight flag set")
		}
		if len(other) != 2 {
			t.Errorf("expected 2 other repos, got %d", len(other))
		}
	})

	t.Run("by full name, case-insensitive", func(t *testing.T) {
		spotlight, _, err := Partition(repos, []string{"Alice/Webapp"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(spotlight) != 1 || spotlight[0].Name != "webapp" {
			t.Errorf("unexpected spotlight set: %+v", spotlight)
		}
	})

	t.Run("empty selection keeps everything in other", func(t *testing.T) {
		spotlight, other, err := Partition(repos, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(spotlight) != 0 {
			t.Errorf("expected no spotlight repos, got %d", len(spotlight))
		}
		if len(other) != 3 {
			t.Errorf("expected 3 other repos, got %d", len(other))
		}
	})

	t.Run("unknown name is a validation error", func(t *testing.T) {
		_, _, err := Partition(repos, []string{"tool", "nonexistent"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("order is preserved", func(t *testing.T) {
		spotlight, other, err := Partition(repos, []string{"dotfiles", "tool"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spotlight[0].Name != "tool" || spotlight[1].Name != "dotfiles" {
			t.Errorf("spotlight repos out of fetch order: %+v", spotlight)
		}
		if len(other) != 1 || other[0].Name != "webapp" {
			t.Errorf("unexpected other set: %+v", other)
		}
	})
}
