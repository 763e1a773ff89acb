package csvparser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/types"
)

func readAll(t *testing.T, input string, settings config.CSVSettings) []types.Row {
	t.Helper()
	p, err := NewStreamingParser(strings.NewReader(input), settings)
	require.NoError(t, err)

	var rows []types.Row
	for p.Next() {
		rows = append(rows, p.Row())
	}
	require.NoError(t, p.Err())
	return rows
}

func TestStreamingParserReadsByName(t *testing.T) {
	input := "mode,location,item_no,quantity,notes\n" +
		"nonbulk,a-1-1,123456,3,fragile\n" +
		"bulk,,607529,24,\n"

	rows := readAll(t, input, config.CSVSettings{Delimiter: ","})

	want := []types.Row{
		{Index: 1, Line: 2, Fields: map[string]string{
			"mode": "nonbulk", "location": "a-1-1", "item_no": "123456", "quantity": "3", "notes": "fragile",
		}},
		{Index: 2, Line: 3, Fields: map[string]string{
			"mode": "bulk", "location": "", "item_no": "607529", "quantity": "24", "notes": "",
		}},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamingParserToleratesBOM(t *testing.T) {
	input := "\uFEFFitem_no,quantity\n123456,2\n"

	p, err := NewStreamingParser(strings.NewReader(input), config.CSVSettings{})
	require.NoError(t, err)
	assert.Equal(t, []string{"item_no", "quantity"}, p.Headers())

	require.True(t, p.Next())
	assert.Equal(t, "123456", p.Row().Get(types.ColumnItemNo))
}

func TestStreamingParserNormalizesHeaders(t *testing.T) {
	input := " Item No ,QUANTITY,Date-Received\n123456,1,2026-10-01\n"

	rows := readAll(t, input, config.CSVSettings{Delimiter: ","})
	require.Len(t, rows, 1)
	assert.Equal(t, "123456", rows[0].Get(types.ColumnItemNo))
	assert.Equal(t, "1", rows[0].Get(types.ColumnQuantity))
	assert.Equal(t, "2026-10-01", rows[0].Get(types.ColumnDateReceived))
}

func TestStreamingParserSkipsBlankRowsButKeepsLines(t *testing.T) {
	input := "item_no,quantity\n" +
		"111111,1\n" +
		",\n" +
		"\n" +
		"222222,2\n"

	rows := readAll(t, input, config.CSVSettings{Delimiter: ","})
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, 5, rows[1].Line)
}

func TestStreamingParserShortRows(t *testing.T) {
	rows := readAll(t, "item_no,quantity,location\n123456\n", config.CSVSettings{Delimiter: ","})
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get(types.ColumnLocation))
	_, present := rows[0].Fields[types.ColumnLocation]
	assert.True(t, present)
}

func TestStreamingParserDelimiters(t *testing.T) {
	tests := []struct {
		delimiter string
		input     string
	}{
		{"|", "item_no|quantity\n123456|4\n"},
		{"pipe", "item_no|quantity\n123456|4\n"},
		{"tab", "item_no\tquantity\n123456\t4\n"},
		{"\\t", "item_no\tquantity\n123456\t4\n"},
		{";", "item_no;quantity\n123456;4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.delimiter, func(t *testing.T) {
			rows := readAll(t, tt.input, config.CSVSettings{Delimiter: tt.delimiter})
			require.Len(t, rows, 1)
			assert.Equal(t, "4", rows[0].Get(types.ColumnQuantity))
		})
	}
}

func TestStreamingParserHeaderOnly(t *testing.T) {
	rows := readAll(t, "item_no,quantity\n", config.CSVSettings{})
	assert.Empty(t, rows)
}

func TestStreamingParserEmptyInput(t *testing.T) {
	_, err := NewStreamingParser(strings.NewReader(""), config.CSVSettings{})
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = NewStreamingParser(strings.NewReader("\uFEFF"), config.CSVSettings{})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestZipRowFirstDuplicateWins(t *testing.T) {
	got := ZipRow([]string{"item_no", "", "item_no"}, []string{"111111", "x", "222222"})
	assert.Equal(t, map[string]string{"item_no": "111111"}, got)
}
