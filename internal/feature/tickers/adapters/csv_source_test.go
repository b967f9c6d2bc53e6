package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tickers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestCSVSource_Records はCSVの読み込みとヘッダー行のスキップを検証します。
func TestCSVSource_Records(t *testing.T) {
	t.Parallel()

	content := "Name,Symbol\nAcme Corp,ACME\n\"Widget, Inc\", WIDG\nOnlyName\n"

	tests := []struct {
		name       string
		skipHeader bool
		want       [][]string
	}{
		{
			name: "all rows",
			want: [][]string{
				{"Name", "Symbol"},
				{"Acme Corp", "ACME"},
				{"Widget, Inc", "WIDG"},
				{"OnlyName"},
			},
		},
		{
			name:       "skip header",
			skipHeader: true,
			want: [][]string{
				{"Acme Corp", "ACME"},
				{"Widget, Inc", "WIDG"},
				{"OnlyName"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := NewCSVSource(writeCSV(t, content), tt.skipHeader)
			got, err := src.Records(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCSVSource_Records_MissingFile は存在しないファイルでエラーになることを検証します。
func TestCSVSource_Records_MissingFile(t *testing.T) {
	t.Parallel()

	src := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"), false)
	_, err := src.Records(context.Background())

	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestCSVSource_Records_CanceledContext はキャンセル済みのコンテキストで読み込みを中断することを検証します。
func TestCSVSource_Records_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVSource(writeCSV(t, "Acme,ACME\n"), false).Records(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
