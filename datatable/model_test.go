package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableModelDefaults(t *testing.T) {
	m := NewTableModel()

	assert.Equal(t, DefaultDisplayConfig(), m.Config())
	assert.Empty(t, m.Rows())
	assert.Empty(t, m.Selection())
	_, ok := m.ConsumeScrollTarget()
	assert.False(t, ok)
}

func TestReplaceDataPreservesContentAndOrder(t *testing.T) {
	m := NewTableModel()
	rows := Rows{{"a", "b"}, {"c"}, {}, {"d", "e", "f"}}

	m.ReplaceData(rows)

	assert.Equal(t, rows, m.Rows())
	assert.Equal(t, 4, m.RowCount())
}

func TestReplaceDataEmpty(t *testing.T) {
	m := NewTableModel()
	m.ReplaceData(Rows{{"x"}})

	m.ReplaceData(nil)

	assert.Empty(t, m.Rows())
	assert.Equal(t, 0, m.RowCount())
}

func TestReplaceDataDoesNotAliasCallerSlice(t *testing.T) {
	m := NewTableModel()
	rows := Rows{{"a"}, {"b"}}
	m.ReplaceData(rows)

	rows[0] = Row{"changed"}

	assert.Equal(t, "a", m.Cell(0, 0))
}

func TestReplaceDataClearsSelectionAndChecks(t *testing.T) {
	m := NewTableModel()
	m.ReplaceData(Rows{{"a"}, {"b"}})
	m.ToggleRowSelection(1)
	m.SetChecked(0, true)

	m.ReplaceData(Rows{{"c"}})

	assert.Empty(t, m.Selection())
	assert.False(t, m.IsChecked(0))
}

func TestCellOutOfRange(t *testing.T) {
	m := NewTableModel()
	m.ReplaceData(Rows{{"a", "b"}, {"c"}})

	assert.Equal(t, "b", m.Cell(0, 1))
	assert.Equal(t, "", m.Cell(1, 1), "short rows render empty cells")
	assert.Equal(t, "", m.Cell(5, 0))
	assert.Equal(t, "", m.Cell(-1, 0))
	assert.Equal(t, "", m.Cell(0, -1))
}

func TestToggleRowSelectionParity(t *testing.T) {
	for calls := 0; calls < 6; calls++ {
		m := NewTableModel()
		for i := 0; i < calls; i++ {
			m.ToggleRowSelection(3)
		}
		assert.Equal(t, calls%2 == 1, m.IsSelected(3), "after %d toggles", calls)
	}
}

func TestToggleRowSelectionIndependentRows(t *testing.T) {
	m := NewTableModel()
	m.ToggleRowSelection(5)
	m.ToggleRowSelection(2)
	m.ToggleRowSelection(9)
	m.ToggleRowSelection(5)

	assert.Equal(t, []int{2, 9}, m.Selection())
}

func TestToggleRowSelectionBeyondDataset(t *testing.T) {
	m := NewTableModel()
	m.ReplaceData(Rows{{"a"}})

	m.ToggleRowSelection(500)

	assert.True(t, m.IsSelected(500))
}

func TestToggleRowSelectionIgnoresNegative(t *testing.T) {
	m := NewTableModel()
	m.ToggleRowSelection(-1)
	assert.Empty(t, m.Selection())
}

func TestClickScenario(t *testing.T) {
	m := NewTableModel()
	m.ReplaceData(Rows{{"a", "b"}, {"c", "d"}})
	m.SetVisibleRowCount(2)

	m.ToggleRowSelection(0)
	assert.Equal(t, []int{0}, m.Selection())

	m.ToggleRowSelection(0)
	assert.Empty(t, m.Selection())
}

func TestScrollTargetConsumedOnce(t *testing.T) {
	m := NewTableModel()
	m.RequestScrollTo(7)

	got, ok := m.ConsumeScrollTarget()
	require.True(t, ok)
	assert.Equal(t, 7, got)

	_, ok = m.ConsumeScrollTarget()
	assert.False(t, ok)
}

func TestScrollTargetLastWriteWins(t *testing.T) {
	m := NewTableModel()
	m.RequestScrollTo(3)
	m.RequestScrollTo(11)

	got, ok := m.ConsumeScrollTarget()
	require.True(t, ok)
	assert.Equal(t, 11, got)
}

func TestScrollTargetZero(t *testing.T) {
	m := NewTableModel()
	m.RequestScrollTo(0)

	got, ok := m.ConsumeScrollTarget()
	require.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestSetVisibleRowCountClamps(t *testing.T) {
	m := NewTableModel()

	m.SetVisibleRowCount(-4)
	assert.Equal(t, 0, m.VisibleRowCount())

	m.SetVisibleRowCount(MaxVisibleRows + 1)
	assert.Equal(t, MaxVisibleRows, m.VisibleRowCount())

	m.SetVisibleRowCount(42)
	assert.Equal(t, 42, m.VisibleRowCount())
}

func TestDisplayToggles(t *testing.T) {
	m := NewTableModel()
	m.SetStriped(false)
	m.SetResizable(false)
	m.SetClickable(false)

	cfg := m.Config()
	assert.False(t, cfg.Striped)
	assert.False(t, cfg.Resizable)
	assert.False(t, cfg.Clickable)
}

func TestCheckedStateIsPerRow(t *testing.T) {
	m := NewTableModel()
	m.SetChecked(1, true)

	assert.True(t, m.IsChecked(1))
	assert.False(t, m.IsChecked(0))
	assert.False(t, m.IsChecked(2))

	m.SetChecked(1, false)
	assert.False(t, m.IsChecked(1))
}

func TestContentText(t *testing.T) {
	rows := Rows{{"a", "b"}, {"c"}}

	assert.Equal(t, "a | b", ContentText(rows, 0))
	assert.Equal(t, "c", ContentText(rows, 1))
	assert.Equal(t, PlaceholderContent, ContentText(rows, 2))
	assert.Equal(t, PlaceholderContent, ContentText(rows, -1))
}

func TestRowsWidth(t *testing.T) {
	assert.Equal(t, 0, Rows{}.Width())
	assert.Equal(t, 3, Rows{{"a"}, {"a", "b", "c"}, {"a", "b"}}.Width())
}

func TestLongTextMentionsRow(t *testing.T) {
	assert.Contains(t, LongText(17), "Row 17 ")
}
