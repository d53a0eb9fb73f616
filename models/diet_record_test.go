package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDietRecord_Kind(t *testing.T) {
	tests := []struct {
		name string
		rec  DietRecord
		want string
	}{
		{
			name: "explicit type wins",
			rec:  DietRecord{RecordType: RecordTypeQuick, FoodID: 3},
			want: RecordTypeQuick,
		},
		{
			name: "food reference implies standard",
			rec:  DietRecord{FoodID: 3},
			want: RecordTypeStandard,
		},
		{
			name: "custom reference implies custom",
			rec:  DietRecord{CustomFoodID: 50},
			want: RecordTypeCustom,
		},
		{
			name: "quick snapshot implies quick",
			rec:  DietRecord{QuickName: "sandwich", QuickEnergy: 450},
			want: RecordTypeQuick,
		},
		{
			name: "bare legacy row defaults to standard",
			rec:  DietRecord{},
			want: RecordTypeStandard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Kind())
		})
	}
}

func TestDietRecord_DateAndTime(t *testing.T) {
	rec := DietRecord{RecordDate: "2026-08-27T00:00:00.000Z", RecordTime: "08:30:15"}
	assert.Equal(t, "2026-08-27", rec.Date())
	assert.Equal(t, "08:30", rec.Time())
}
