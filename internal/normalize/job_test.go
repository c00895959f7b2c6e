package normalize

import "testing"

func TestNormalizeJob(t *testing.T) {
	t.Run("missing identity rejected", func(t *testing.T) {
		if got := NormalizeJob(map[string]any{"type": "capture"}); got != nil {
			t.Errorf("NormalizeJob() = %+v, want nil", got)
		}
	})

	t.Run("account id from relation object", func(t *testing.T) {
		got := NormalizeJob(map[string]any{
			"jobId":   "j-1",
			"type":    "capture",
			"status":  "running",
			"account": map[string]any{"id": "acc-7"},
		})
		if got == nil {
			t.Fatal("NormalizeJob() = nil, want record")
		}
		if got.AccountID != "acc-7" {
			t.Errorf("AccountID = %q, want acc-7", got.AccountID)
		}
		if got.StatusLabel != "running" {
			t.Errorf("StatusLabel = %q, want running", got.StatusLabel)
		}
	})

	t.Run("flat account id fallback", func(t *testing.T) {
		got := NormalizeJob(map[string]any{
			"id":         "j-2",
			"account_id": "acc-9",
		})
		if got == nil || got.AccountID != "acc-9" {
			t.Fatalf("NormalizeJob() = %+v, want AccountID acc-9", got)
		}
	})

	t.Run("own id never leaks into account id", func(t *testing.T) {
		got := NormalizeJob(map[string]any{"id": "j-3"})
		if got == nil {
			t.Fatal("NormalizeJob() = nil, want record")
		}
		if got.AccountID != "" {
			t.Errorf("AccountID = %q, want empty", got.AccountID)
		}
	})

	t.Run("nested error message", func(t *testing.T) {
		got := NormalizeJob(map[string]any{
			"id":          "j-4",
			"status":      "failed",
			"retryCount":  float64(3),
			"started_at":  "2024-04-01T00:00:00Z",
			"finished_at": "2024-04-01T00:05:00Z",
			"lastError":   map[string]any{"message": "proxy unreachable"},
		})
		if got == nil {
			t.Fatal("NormalizeJob() = nil, want record")
		}
		if got.ErrorMessage != "proxy unreachable" {
			t.Errorf("ErrorMessage = %q", got.ErrorMessage)
		}
		if got.Attempts == nil || *got.Attempts != 3 {
			t.Errorf("Attempts = %v, want 3", got.Attempts)
		}
		if got.StartedAt != "2024-04-01T00:00:00Z" || got.FinishedAt != "2024-04-01T00:05:00Z" {
			t.Errorf("times = %q / %q", got.StartedAt, got.FinishedAt)
		}
	})
}

func TestNormalizeOption(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *Option
	}{
		{
			name:  "value and label",
			input: map[string]any{"value": "pg-1", "label": "Residential EU"},
			want:  &Option{ID: "pg-1", Label: "Residential EU"},
		},
		{
			name:  "label falls back to id",
			input: map[string]any{"id": "pg-2"},
			want:  &Option{ID: "pg-2", Label: "pg-2"},
		},
		{
			name:  "name used as label",
			input: map[string]any{"key": "pg-3", "name": "Datacenter US"},
			want:  &Option{ID: "pg-3", Label: "Datacenter US"},
		},
		{
			name:  "no identity",
			input: map[string]any{"label": "orphan"},
			want:  nil,
		},
		{
			name:  "non-object",
			input: "pg-4",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeOption(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NormalizeOption() = %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("NormalizeOption() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
