package storage

import (
	"strings"
	"testing"
	"time"
)

func TestVideoKey(t *testing.T) {
	at := time.UnixMilli(1717315200000)

	tests := []struct {
		name     string
		userID   string
		exercise string
		want     string
	}{
		{
			name:     "plain name",
			userID:   "u1",
			exercise: "Squat",
			want:     "u1/Squat/1717315200000.mp4",
		},
		{
			name:     "spaces become dashes",
			userID:   "u1",
			exercise: "Barbell Back Squat",
			want:     "u1/Barbell-Back-Squat/1717315200000.mp4",
		},
		{
			name:     "unsafe characters stripped",
			userID:   "u1",
			exercise: "Squat?/#1",
			want:     "u1/Squat1/1717315200000.mp4",
		},
		{
			name:     "all-unsafe name falls back",
			userID:   "u1",
			exercise: "???",
			want:     "u1/exercise/1717315200000.mp4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VideoKey(tt.userID, tt.exercise, at); got != tt.want {
				t.Errorf("VideoKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVideoKeyDistinguishesRepeatedUploads(t *testing.T) {
	first := VideoKey("u1", "Squat", time.UnixMilli(1000))
	second := VideoKey("u1", "Squat", time.UnixMilli(1001))
	if first == second {
		t.Errorf("repeated uploads collide: %q", first)
	}
	if !strings.HasPrefix(first, "u1/Squat/") {
		t.Errorf("key not scoped under user and exercise: %q", first)
	}
}
