package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate_Example640x480(t *testing.T) {
	alerts := DefaultThresholds().Evaluate(640, 480, BoundingBox{X: 260, Y: 140, Width: 120, Height: 200})
	require.Equal(t, []Alert{AlertMoveCloser, AlertHeadTilt}, alerts)
}

func TestEvaluate_CenteredGoodPosture(t *testing.T) {
	// 200x200 = 40000 из 307200, центр (320,240)
	alerts := DefaultThresholds().Evaluate(640, 480, BoundingBox{X: 220, Y: 140, Width: 200, Height: 200})
	require.Empty(t, alerts)
}

func TestEvaluate_Cases(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name string
		box  BoundingBox
		want []Alert
	}{
		{
			name: "horizontal offset only",
			box:  BoundingBox{X: 20, Y: 140, Width: 200, Height: 200},
			want: []Alert{AlertCenterHorizontally},
		},
		{
			name: "vertical offset only",
			box:  BoundingBox{X: 220, Y: 0, Width: 200, Height: 180},
			want: []Alert{AlertCenterVertically},
		},
		{
			name: "both offsets",
			box:  BoundingBox{X: 0, Y: 0, Width: 200, Height: 180},
			want: []Alert{AlertCenterHorizontally, AlertCenterVertically},
		},
		{
			name: "too close",
			box:  BoundingBox{X: 120, Y: 40, Width: 400, Height: 400},
			want: []Alert{AlertMoveBack},
		},
		{
			name: "area exactly min ratio is not too far",
			box:  BoundingBox{X: 240, Y: 144, Width: 160, Height: 192},
			want: []Alert{},
		},
		{
			name: "area exactly max ratio is not too close",
			box:  BoundingBox{X: 176, Y: 80, Width: 288, Height: 320},
			want: []Alert{},
		},
		{
			name: "wide face is tilted",
			box:  BoundingBox{X: 170, Y: 165, Width: 300, Height: 150},
			want: []Alert{AlertHeadTilt},
		},
		{
			name: "aspect exactly at bounds is straight",
			box:  BoundingBox{X: 190, Y: 140, Width: 260, Height: 200},
			want: []Alert{},
		},
		{
			name: "zero height skips tilt check",
			box:  BoundingBox{X: 320, Y: 240, Width: 10, Height: 0},
			want: []Alert{AlertMoveCloser},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := th.Evaluate(640, 480, tt.box)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_DistanceAlertsAreExclusive(t *testing.T) {
	th := DefaultThresholds()
	for w := 10; w <= 640; w += 30 {
		for h := 10; h <= 480; h += 30 {
			alerts := th.Evaluate(640, 480, BoundingBox{X: 0, Y: 0, Width: w, Height: h})
			require.False(t, containsAlert(alerts, AlertMoveCloser) && containsAlert(alerts, AlertMoveBack),
				"box %dx%d", w, h)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	th := DefaultThresholds()
	box := BoundingBox{X: 33, Y: 71, Width: 97, Height: 160}
	require.Equal(t, th.Evaluate(640, 480, box), th.Evaluate(640, 480, box))
}

func containsAlert(alerts []Alert, a Alert) bool {
	for _, x := range alerts {
		if x == a {
			return true
		}
	}
	return false
}
