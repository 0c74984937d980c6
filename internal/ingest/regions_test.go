package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		location string
		code     string
		ok       bool
	}{
		{"경기 시흥시 정왕동", "41390", true},
		{"경기도 광주시 오포읍", "41610", true},
		{"광주광역시 광산구 수완동", "29200", true},
		{"세종특별자치시 반곡동", "36110", true},
		{"서울특별시 서초구 반포동", "11650", true},
		{"부산광역시 해운대구", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			code, ok := CodeFor(tt.location)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestDefaultRegions_UniqueCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range DefaultRegions {
		assert.NotEmpty(t, r.Name)
		assert.Len(t, r.Code, 5)
		assert.False(t, seen[r.Code], "duplicate code %s", r.Code)
		seen[r.Code] = true
	}
}
