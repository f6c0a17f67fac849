package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindRegion(t *testing.T) {
	tests := []struct {
		postal string
		want   string
	}{
		{"1000", RegionBrussels},
		{"1299", RegionBrussels},
		{"1300", RegionWallonia},
		{"1499", RegionWallonia},
		{"1500", RegionFlanders},
		{"3999", RegionFlanders},
		{"4000", RegionWallonia},
		{"7999", RegionWallonia},
		{"8000", RegionFlanders},
		{"9992", RegionFlanders},
		{"9993", ""},
		{"0999", ""},
		{" 2000 ", RegionFlanders},
		{"", ""},
		{"B-1000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.postal, func(t *testing.T) {
			assert.Equal(t, tt.want, FindRegion(tt.postal))
		})
	}
}
