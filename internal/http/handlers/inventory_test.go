package handlers

import "testing"

func TestForecastAction(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"out_of_stock", "Urgent Reorder"},
		{"reorder_needed", "Reorder Now"},
		{"low_stock", "Monitor"},
		{"in_stock", "No Action"},
		{"resolved", "Resolved"},
		{"back_ordered", "Back Ordered"},
	}
	for _, tt := range tests {
		if got := forecastAction(tt.status); got != tt.want {
			t.Fatalf("forecastAction(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
