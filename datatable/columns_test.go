package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultColumns(t *testing.T) {
	cols := DefaultColumns()
	require.Len(t, cols, 5)

	assert.Equal(t, SizingAuto, cols[ColumnRow].Sizing)
	assert.Equal(t, SizingAuto, cols[ColumnInteraction].Sizing)
	assert.Equal(t, SizingResizable, cols[ColumnExpanding].Sizing)
	assert.Equal(t, SizingClip, cols[ColumnClipped].Sizing)
	assert.Equal(t, SizingRemainder, cols[ColumnContent].Sizing)
}

func TestLayoutColumnsDefaults(t *testing.T) {
	content := []float32{30, 90, 0, 0, 0}

	widths := LayoutColumns(DefaultColumns(), content, nil, 800)

	assert.Equal(t, []float32{30, 90, 100, 100, 480}, widths)
}

func TestLayoutColumnsResizableOverrideClamped(t *testing.T) {
	content := []float32{30, 90, 0, 0, 0}

	widths := LayoutColumns(DefaultColumns(), content, []float32{0, 0, 250, 0, 0}, 800)
	assert.Equal(t, float32(250), widths[ColumnExpanding])

	widths = LayoutColumns(DefaultColumns(), content, []float32{0, 0, 1000, 0, 0}, 800)
	assert.Equal(t, float32(300), widths[ColumnExpanding])

	widths = LayoutColumns(DefaultColumns(), content, []float32{0, 0, 5, 0, 0}, 800)
	assert.Equal(t, float32(40), widths[ColumnExpanding])
}

func TestLayoutColumnsOverrideIgnoredForOtherSizings(t *testing.T) {
	content := []float32{30, 90, 0, 0, 0}

	widths := LayoutColumns(DefaultColumns(), content, []float32{77, 77, 0, 77, 77}, 800)

	assert.Equal(t, float32(30), widths[ColumnRow])
	assert.Equal(t, float32(100), widths[ColumnClipped])
}

func TestLayoutColumnsRemainderNeverNegative(t *testing.T) {
	content := []float32{30, 90, 0, 0, 0}

	widths := LayoutColumns(DefaultColumns(), content, nil, 100)

	assert.Equal(t, float32(0), widths[ColumnContent])
}

func TestLayoutColumnsSharedRemainder(t *testing.T) {
	cols := []Column{
		{Sizing: SizingClip, Initial: 100},
		{Sizing: SizingRemainder},
		{Sizing: SizingRemainder, Min: 250},
	}

	widths := LayoutColumns(cols, nil, nil, 500)

	assert.Equal(t, []float32{100, 200, 250}, widths)
}

func TestSizingString(t *testing.T) {
	assert.Equal(t, "Clip", SizingClip.String())
	assert.Equal(t, "Unknown(9)", Sizing(9).String())
}
