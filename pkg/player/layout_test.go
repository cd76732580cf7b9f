package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-vidview/vidview/pkg/geometry"
)

func TestComputeLayout_BottomRowOrder(t *testing.T) {
	l := ComputeLayout(geometry.Size{Width: 640, Height: 360}, DefaultProgressStyle())

	// Left to right: toggle, seek bar, time label, download, fullscreen.
	assert.Less(t, l.BottomToggle.Right, l.Track.Left, "toggle overlaps track")
	assert.Less(t, l.Track.Right, l.TimeLabel.Left, "track overlaps time label")
	assert.Less(t, l.TimeLabel.Right, l.Download.Left, "time label overlaps download")
	assert.Less(t, l.Download.Right, l.Fullscreen.Left, "download overlaps fullscreen")

	style := DefaultProgressStyle()
	assert.Equal(t, style.SideMargin, l.BottomToggle.Left, "row not inset on the left")
	assert.Equal(t, 640-style.SideMargin, l.Fullscreen.Right, "row not inset on the right")
	assert.Positive(t, l.Track.Width(), "track collapsed in a wide container")
}

func TestComputeLayout_RowSitsAtBottomOffset(t *testing.T) {
	style := DefaultProgressStyle()
	l := ComputeLayout(geometry.Size{Width: 640, Height: 360}, style)

	wantY := 360 - style.BottomOffset
	row := map[string]geometry.Rect{
		"toggle":     l.BottomToggle,
		"track":      l.Track,
		"label":      l.TimeLabel,
		"download":   l.Download,
		"fullscreen": l.Fullscreen,
	}
	for name, r := range row {
		assert.Equal(t, wantY, r.Center().Y, "%s not centered on the row", name)
	}
	assert.Equal(t, style.Height, l.Track.Height(), "track height ignores the style")
}

func TestComputeLayout_CenterButtonAndSpinnerCentered(t *testing.T) {
	l := ComputeLayout(geometry.Size{Width: 640, Height: 360}, DefaultProgressStyle())

	center := l.Container.Center()
	require.Equal(t, center, l.CenterButton.Center())
	require.Equal(t, center, l.Spinner.Center())
	assert.Equal(t, float64(centerButtonSize), l.CenterButton.Width())
	assert.Equal(t, float64(spinnerSize), l.Spinner.Width())
}

func TestComputeLayout_NarrowContainerCollapsesTrack(t *testing.T) {
	l := ComputeLayout(geometry.Size{Width: 120, Height: 90}, DefaultProgressStyle())

	assert.Zero(t, l.Track.Width(), "track should collapse instead of going negative")
	assert.False(t, l.Track.Left > l.Track.Right, "track inverted")
}
