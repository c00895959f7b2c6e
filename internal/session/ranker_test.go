package session

import "testing"

func TestPickLatest(t *testing.T) {
	tests := []struct {
		name     string
		attempts []Attempt
		want     string // LastAttemptAt of the expected pick; "" means nil
	}{
		{
			name:     "empty input",
			attempts: nil,
			want:     "",
		},
		{
			name: "newer timestamp wins",
			attempts: []Attempt{
				{LastAttemptAt: "2024-01-01T00:00:00Z"},
				{LastAttemptAt: "2024-06-01T00:00:00Z"},
			},
			want: "2024-06-01T00:00:00Z",
		},
		{
			name: "order independent",
			attempts: []Attempt{
				{LastAttemptAt: "2024-06-01T00:00:00Z"},
				{LastAttemptAt: "2024-01-01T00:00:00Z"},
			},
			want: "2024-06-01T00:00:00Z",
		},
		{
			name: "parseable challenger displaces unparseable incumbent",
			attempts: []Attempt{
				{LastAttemptAt: "not-a-date"},
				{LastAttemptAt: "2024-01-01T00:00:00Z"},
			},
			want: "2024-01-01T00:00:00Z",
		},
		{
			name: "unparseable challenger never displaces parseable incumbent",
			attempts: []Attempt{
				{LastAttemptAt: "2024-01-01T00:00:00Z"},
				{LastAttemptAt: "garbage"},
			},
			want: "2024-01-01T00:00:00Z",
		},
		{
			name: "all unparseable falls back to first in source order",
			attempts: []Attempt{
				{LastAttemptAt: "bad"},
				{LastAttemptAt: "also-bad"},
			},
			want: "bad",
		},
		{
			name: "missing timestamps fall back to first in source order",
			attempts: []Attempt{
				{SessionMode: "persistent"},
				{SessionMode: "ephemeral"},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickLatest(tt.attempts)
			if len(tt.attempts) == 0 {
				if got != nil {
					t.Fatalf("PickLatest() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("PickLatest() = nil, want attempt")
			}
			if got.LastAttemptAt != tt.want {
				t.Errorf("PickLatest() at = %q, want %q", got.LastAttemptAt, tt.want)
			}
		})
	}

	t.Run("fallback pick is the first element", func(t *testing.T) {
		attempts := []Attempt{{SessionMode: "persistent"}, {SessionMode: "ephemeral"}}
		got := PickLatest(attempts)
		if got == nil || got.SessionMode != "persistent" {
			t.Errorf("PickLatest() = %+v, want first attempt", got)
		}
	})
}

func TestDeriveSortKey(t *testing.T) {
	tests := []struct {
		name    string
		history History
		want    string
	}{
		{
			name: "success preferred over chronologically newer failure",
			history: History{
				Successes: []Attempt{{LastAttemptAt: "2024-01-01T00:00:00Z"}},
				Failures:  []Attempt{{LastAttemptAt: "2024-06-01T00:00:00Z"}},
			},
			want: "2024-01-01T00:00:00Z",
		},
		{
			name: "failure timestamp used when no success has one",
			history: History{
				Successes: []Attempt{{SessionMode: "persistent"}},
				Failures:  []Attempt{{LastAttemptAt: "2024-06-01T00:00:00Z"}},
			},
			want: "2024-06-01T00:00:00Z",
		},
		{
			name: "latest success wins within the list",
			history: History{
				Successes: []Attempt{
					{LastAttemptAt: "2024-02-01T00:00:00Z"},
					{LastAttemptAt: "2024-04-01T00:00:00Z"},
				},
			},
			want: "2024-04-01T00:00:00Z",
		},
		{
			name:    "empty history",
			history: History{},
			want:    "",
		},
		{
			name: "no timestamps anywhere",
			history: History{
				Successes: []Attempt{{SessionMode: "persistent"}},
				Failures:  []Attempt{{ErrorMessage: "bad proxy"}},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveSortKey(tt.history); got != tt.want {
				t.Errorf("DeriveSortKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
