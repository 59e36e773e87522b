package consultation

import (
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
)

func TestCanModify(t *testing.T) {
	tests := []struct {
		status  Status
		wantErr bool
	}{
		{StatusScheduled, false},
		{StatusCanceled, true},
		{StatusCompleted, true},
	}

	for _, tt := range tests {
		err := CanModify(tt.status)
		if (err != nil) != tt.wantErr {
			t.Fatalf("CanModify(%s) error = %v, wantErr %v", tt.status, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, domain.ErrInvalidStatusTransition) {
			t.Fatalf("CanModify(%s) error kind = %v", tt.status, domain.KindOf(err))
		}
	}
}

func TestParseStatus(t *testing.T) {
	if got, err := ParseStatus("CANCELED"); err != nil || got != StatusCanceled {
		t.Fatalf("ParseStatus(CANCELED) = %v, %v", got, err)
	}
	if _, err := ParseStatus("PENDING"); !errors.Is(err, domain.ErrInvalidStatusTransition) {
		t.Fatalf("ParseStatus(PENDING) error = %v, want InvalidStatusTransition", err)
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	hour := time.Hour

	tests := []struct {
		name string
		b    time.Time
		aDur time.Duration
		bDur time.Duration
		want bool
	}{
		{"same instant exact", base, 0, 0, true},
		{"different instant exact", base.Add(time.Minute), 0, 0, false},
		{"inside interval", base.Add(30 * time.Minute), hour, hour, true},
		{"adjacent interval", base.Add(hour), hour, hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(base, tt.aDur, tt.b, tt.bDur); got != tt.want {
				t.Fatalf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
