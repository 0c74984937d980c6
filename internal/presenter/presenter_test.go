package presenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDDay(t *testing.T) {
	today := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		name     string
		deadline time.Time
		want     Badge
	}{
		{"closed", today.AddDate(0, 0, -1), Badge{"마감", "bg-gray-400", -1}},
		{"today earlier hour", time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC), Badge{"D-Day", "bg-red-500", 0}},
		{"one day", today.AddDate(0, 0, 1), Badge{"D-1", "bg-red-500", 1}},
		{"one week", today.AddDate(0, 0, 7), Badge{"D-7", "bg-red-500", 7}},
		{"eight days", today.AddDate(0, 0, 8), Badge{"D-8", "bg-orange-500", 8}},
		{"thirty days", today.AddDate(0, 0, 30), Badge{"D-30", "bg-orange-500", 30}},
		{"far", today.AddDate(0, 0, 45), Badge{"D-45", "bg-blue-500", 45}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DDay(tt.deadline, today))
		})
	}
}

func TestFormatMargin(t *testing.T) {
	up := FormatMargin(1.5, 12)
	require.NotNil(t, up)
	assert.Equal(t, "+1.5억 (+12.0%)", up.Text)
	assert.Equal(t, "text-red-500", up.Color)

	down := FormatMargin(-0.34, -8.26)
	require.NotNil(t, down)
	assert.Equal(t, "-0.3억 (-8.3%)", down.Text)
	assert.Equal(t, "text-blue-500", down.Color)

	assert.Nil(t, FormatMargin(0, 0))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "-", FormatPrice(0))
	assert.Equal(t, "3.2억", FormatPrice(3.24))
	assert.Equal(t, "5.0억", FormatWon(500000000))
	assert.Equal(t, "8.3억", FormatWon(826000000))
}

func TestMargin(t *testing.T) {
	m, r := Margin(4, 5)
	assert.InDelta(t, 1, m, 1e-9)
	assert.InDelta(t, 25, r, 1e-9)

	m, r = Margin(0, 5)
	assert.InDelta(t, 5, m, 1e-9)
	assert.Zero(t, r)
}
