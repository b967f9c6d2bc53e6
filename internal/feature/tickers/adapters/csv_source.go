package adapters

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"company_backend/internal/feature/tickers/usecase"
)

// csvSource はCSVファイルからティッカーのレコードを読み込むTickerSource実装です。
// 1列目が会社名、2列目がシンボルです。
type csvSource struct {
	path       string
	skipHeader bool
}

var _ usecase.TickerSource = (*csvSource)(nil)

// NewCSVSource は指定されたパスのCSVファイルを読むcsvSourceを生成します。
// skipHeader が true の場合、先頭行を読み飛ばします。
func NewCSVSource(path string, skipHeader bool) *csvSource {
	return &csvSource{path: path, skipHeader: skipHeader}
}

// Records はファイル全体を読み込み、レコードを返します。呼び出しのたびにファイルを開き直します。
func (s *csvSource) Records(ctx context.Context) ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open tickers csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tickers csv %s: %w", s.path, err)
		}
		if first && s.skipHeader {
			first = false
			continue
		}
		first = false
		records = append(records, rec)
	}
	return records, nil
}
