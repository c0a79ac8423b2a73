package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("Date;Name;Points"))
	assert.Equal(t, ',', DetectDelimiter("Date,Name,Points"))
	assert.Equal(t, '\t', DetectDelimiter("Date\tName\tPoints"))
	assert.Equal(t, ',', DetectDelimiter("Date"))
	// semicolon wins even when both appear
	assert.Equal(t, ';', DetectDelimiter("Date;Name,Points"))
}

func TestNormalizeSemicolonExport(t *testing.T) {
	schema, ok := Lookup("vikings_friday")
	require.True(t, ok)

	data := []byte("Date;Name;Points;Games;Won;Lost;DartsThrown;ScoreLeft;Average;180;171;HighCloser;Winner;Block;Season\n" +
		"2024-01-05;Alice;12;10;6;4;180;120;45.5;1;0;120;1;A;2024\n")

	rows, err := Normalize(data, schema)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2024-01-05", row["date"])
	assert.Equal(t, "Alice", row["name"])
	assert.Equal(t, int64(12), row["points"])
	assert.Equal(t, int64(180), row["darts_thrown"])
	assert.Equal(t, 45.5, row["average"])
	assert.Equal(t, int64(1), row["winner"])
	assert.Equal(t, "2024", row["season"])
}

func TestNormalizeCommaExport(t *testing.T) {
	schema, ok := Lookup("jda_legs")
	require.True(t, ok)

	data := []byte("Date,Player,Opponent,Darts,ScoreLeft,Result\n" +
		"2024-02-10,Bob,Carol,18,0,Won\n")

	rows, err := Normalize(data, schema)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(18), rows[0]["darts"])
	assert.Equal(t, "Won", rows[0]["result"])
}

func TestNormalizeMissingNumericsBecomeNull(t *testing.T) {
	schema, ok := Lookup("vikings_friday")
	require.True(t, ok)

	data := []byte("Date;Name;Points;Games;Won;Lost;DartsThrown;ScoreLeft;Average;180;171;HighCloser;Winner;Block;Season\n" +
		"2024-01-05;Alice;;;;;;;;;;;;;\n")

	rows, err := Normalize(data, schema)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Nil(t, row["points"])
	assert.Nil(t, row["average"])
	// counters marked zero-default land as 0, not NULL
	assert.Equal(t, int64(0), row["winner"])
}

func TestNormalizeFloatishIntCell(t *testing.T) {
	schema, ok := Lookup("jda_legs")
	require.True(t, ok)

	data := []byte("Date,Player,Opponent,Darts,ScoreLeft,Result\n" +
		"2024-02-10,Bob,Carol,18.0,0,Won\n")

	rows, err := Normalize(data, schema)
	require.NoError(t, err)
	assert.Equal(t, int64(18), rows[0]["darts"])
}

func TestNormalizeStripsQuoteLayer(t *testing.T) {
	schema, ok := Lookup("jda_legs")
	require.True(t, ok)

	data := []byte("Date,Player,Opponent,Darts,ScoreLeft,Result\n" +
		"2024-02-10,'Bob','Carol',18,0,'Won'\n")

	rows, err := Normalize(data, schema)
	require.NoError(t, err)
	assert.Equal(t, "Bob", rows[0]["player"])
	assert.Equal(t, "Won", rows[0]["result"])
}

func TestNormalizeDropsBlankRows(t *testing.T) {
	schema, ok := Lookup("jda_legs")
	require.True(t, ok)

	data := []byte("Date,Player,Opponent,Darts,ScoreLeft,Result\n" +
		",,,,,\n" +
		"2024-02-10,Bob,Carol,18,0,Won\n")

	rows, err := Normalize(data, schema)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestNormalizeEmptyDataset(t *testing.T) {
	schema, ok := Lookup("jda_legs")
	require.True(t, ok)

	_, err := Normalize([]byte("Date,Player,Opponent,Darts,ScoreLeft,Result\n"), schema)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Normalize([]byte("Date,Player,Opponent,Darts,ScoreLeft,Result\n,,,,,\n"), schema)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestNormalizeStructuralFailure(t *testing.T) {
	schema, ok := Lookup("jda_legs")
	require.True(t, ok)

	// ragged record: one cell where the header has six
	_, err := Normalize([]byte("Date,Player,Opponent,Darts,ScoreLeft,Result\nonly-one-cell\n"), schema)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}
