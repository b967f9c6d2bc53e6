package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_backend/internal/domain"
	exchangeentity "company_backend/internal/feature/exchanges/domain/entity"
	"company_backend/internal/feature/tickers/domain/entity"
)

var ErrDB = errors.New("database error")

// mockExchangeStore はExchangeStoreインターフェースのモック実装です。
type mockExchangeStore struct {
	FindByMICFunc func(ctx context.Context, mic string) (*exchangeentity.Exchange, error)
	CreateFunc    func(ctx context.Context, e *exchangeentity.Exchange) error
	DeleteByMICFunc func(ctx context.Context, mic string) (int64, error)
	Created         []string
	Deleted         []string
}

func (m *mockExchangeStore) FindByMIC(ctx context.Context, mic string) (*exchangeentity.Exchange, error) {
	if m.FindByMICFunc != nil {
		return m.FindByMICFunc(ctx, mic)
	}
	return nil, domain.ErrNotFound
}

func (m *mockExchangeStore) Create(ctx context.Context, e *exchangeentity.Exchange) error {
	m.Created = append(m.Created, e.MIC)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	e.ID = uuid.New()
	return nil
}

func (m *mockExchangeStore) DeleteByMIC(ctx context.Context, mic string) (int64, error) {
	m.Deleted = append(m.Deleted, mic)
	if m.DeleteByMICFunc != nil {
		return m.DeleteByMICFunc(ctx, mic)
	}
	return 0, nil
}

// mockTickerWriter はTickerWriterインターフェースのモック実装です。
type mockTickerWriter struct {
	CreateBatchFunc func(ctx context.Context, tickers []entity.Ticker) error
	Batches         [][]entity.Ticker
}

func (m *mockTickerWriter) CreateBatch(ctx context.Context, tickers []entity.Ticker) error {
	m.Batches = append(m.Batches, tickers)
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tickers)
	}
	return nil
}

// mockTickerSource はTickerSourceインターフェースのモック実装です。
type mockTickerSource struct {
	records [][]string
	err     error
	calls   int
}

func (m *mockTickerSource) Records(ctx context.Context) ([][]string, error) {
	m.calls++
	return m.records, m.err
}

// TestSplitMICs はスペース区切りとカンマ区切りの引数を正しく分解することを検証します。
func TestSplitMICs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "single", args: []string{"XNY"}, want: []string{"XNY"}},
		{name: "space separated args", args: []string{"XNY", "XNAS"}, want: []string{"XNY", "XNAS"}},
		{name: "comma separated", args: []string{"XNY,XNAS"}, want: []string{"XNY", "XNAS"}},
		{name: "mixed with blanks", args: []string{" XNY , ", ",XNAS", "XASE"}, want: []string{"XNY", "XNAS", "XASE"}},
		{name: "empty", args: []string{",", ""}, want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitMICs(tt.args))
		})
	}
}

// TestTickerFromRecord はレコードの切り詰め・トリム・スキップ判定を検証します。
func TestTickerFromRecord(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("あ", 60)

	tests := []struct {
		name       string
		rec        []string
		wantOK     bool
		wantName   string
		wantSymbol string
	}{
		{name: "plain", rec: []string{"Acme Corp", "ACME"}, wantOK: true, wantName: "Acme Corp", wantSymbol: "ACME"},
		{name: "symbol trimmed", rec: []string{"Acme Corp", "  ACME \t"}, wantOK: true, wantName: "Acme Corp", wantSymbol: "ACME"},
		{name: "extra columns ignored", rec: []string{"Acme Corp", "ACME", "NYSE", "x"}, wantOK: true, wantName: "Acme Corp", wantSymbol: "ACME"},
		{name: "name truncated by rune", rec: []string{long, "ACME"}, wantOK: true, wantName: strings.Repeat("あ", 50), wantSymbol: "ACME"},
		{name: "symbol truncated then trimmed", rec: []string{"X", strings.Repeat("Z", 49) + "  TAIL"}, wantOK: true, wantName: "X", wantSymbol: strings.Repeat("Z", 49)},
		{name: "one column", rec: []string{"Acme Corp"}},
		{name: "blank symbol", rec: []string{"Acme Corp", "   "}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tickerFromRecord(tt.rec)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, got.CompanyName)
			assert.Equal(t, tt.wantSymbol, got.Symbol)
			assert.Equal(t, domain.StatusActive, got.Status)
		})
	}
}

// TestIngestUsecase_Ingest_CreatesMissingExchange は取引所が存在しない場合に作成してから取り込むことを検証します。
func TestIngestUsecase_Ingest_CreatesMissingExchange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	existingID := uuid.New()
	exchanges := &mockExchangeStore{
		FindByMICFunc: func(ctx context.Context, mic string) (*exchangeentity.Exchange, error) {
			if mic == "XNAS" {
				return &exchangeentity.Exchange{ID: existingID, MIC: mic}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	tickers := &mockTickerWriter{}
	source := &mockTickerSource{records: [][]string{
		{"Acme Corp", "ACME"},
		{"broken"},
		{"Widget Inc", " WIDG "},
	}}

	uc := NewIngestUsecase(exchanges, tickers, source)
	results, err := uc.Ingest(ctx, []string{"XNY", "XNAS"}, IngestOptions{})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"XNY"}, exchanges.Created)
	assert.Empty(t, exchanges.Deleted)
	assert.Equal(t, 2, source.calls, "the source is read once per exchange")

	assert.True(t, results[0].ExchangeCreated)
	assert.Equal(t, 2, results[0].Processed)
	assert.Equal(t, 1, results[0].Skipped)
	assert.False(t, results[1].ExchangeCreated)
	assert.Equal(t, existingID, results[1].ExchangeID)

	require.Len(t, tickers.Batches, 2)
	for i, batch := range tickers.Batches {
		require.Len(t, batch, 2)
		for _, tk := range batch {
			assert.Equal(t, results[i].ExchangeID, tk.ExchangeID)
		}
		assert.Equal(t, "WIDG", batch[1].Symbol)
	}
}

// TestIngestUsecase_Ingest_Reset はリセット指定時に同じMICの取引所をすべて削除して作り直すことを検証します。
func TestIngestUsecase_Ingest_Reset(t *testing.T) {
	t.Parallel()

	exchanges := &mockExchangeStore{
		FindByMICFunc: func(ctx context.Context, mic string) (*exchangeentity.Exchange, error) {
			t.Fatalf("FindByMIC must not be called on reset, got %s", mic)
			return nil, nil
		},
		DeleteByMICFunc: func(ctx context.Context, mic string) (int64, error) {
			return 2, nil
		},
	}
	uc := NewIngestUsecase(exchanges, &mockTickerWriter{}, &mockTickerSource{records: [][]string{{"Acme", "ACME"}}})

	results, err := uc.Ingest(context.Background(), []string{"XNY"}, IngestOptions{Reset: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"XNY"}, exchanges.Deleted)
	assert.Equal(t, []string{"XNY"}, exchanges.Created)
	require.Len(t, results, 1)
	assert.True(t, results[0].ExchangeCreated)
	assert.NotEqual(t, uuid.Nil, results[0].ExchangeID)
}

// TestIngestUsecase_Ingest_ResetDeleteFails はリセット時の削除に失敗した場合に作成せず中断することを検証します。
func TestIngestUsecase_Ingest_ResetDeleteFails(t *testing.T) {
	t.Parallel()

	exchanges := &mockExchangeStore{
		DeleteByMICFunc: func(ctx context.Context, mic string) (int64, error) {
			return 0, ErrDB
		},
	}
	uc := NewIngestUsecase(exchanges, &mockTickerWriter{}, &mockTickerSource{})

	results, err := uc.Ingest(context.Background(), []string{"XNY"}, IngestOptions{Reset: true})

	assert.ErrorIs(t, err, ErrDB)
	assert.Empty(t, results)
	assert.Empty(t, exchanges.Created)
}

// TestIngestUsecase_Ingest_Errors は最初のエラーで処理が中断されることを検証します。
func TestIngestUsecase_Ingest_Errors(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("csv broken")

	tests := []struct {
		name        string
		mics        []string
		exchanges   *mockExchangeStore
		tickers     *mockTickerWriter
		source      *mockTickerSource
		wantErr     error
		wantResults int
	}{
		{
			name:      "no mics",
			exchanges: &mockExchangeStore{},
			tickers:   &mockTickerWriter{},
			source:    &mockTickerSource{},
			wantErr:   domain.ErrValidation,
		},
		{
			name: "lookup fails",
			mics: []string{"XNY"},
			exchanges: &mockExchangeStore{
				FindByMICFunc: func(ctx context.Context, mic string) (*exchangeentity.Exchange, error) { return nil, ErrDB },
			},
			tickers: &mockTickerWriter{},
			source:  &mockTickerSource{},
			wantErr: ErrDB,
		},
		{
			name:      "source fails",
			mics:      []string{"XNY", "XNAS"},
			exchanges: &mockExchangeStore{},
			tickers:   &mockTickerWriter{},
			source:    &mockTickerSource{err: sourceErr},
			wantErr:   sourceErr,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := NewIngestUsecase(tt.exchanges, tt.tickers, tt.source)
			results, err := uc.Ingest(context.Background(), tt.mics, IngestOptions{})

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Len(t, results, tt.wantResults)
		})
	}
}

// TestIngestUsecase_Ingest_StopsOnWriteError は2件目の取引所で書き込みに失敗した場合、それまでの結果を返して中断することを検証します。
func TestIngestUsecase_Ingest_StopsOnWriteError(t *testing.T) {
	t.Parallel()

	calls := 0
	tickers := &mockTickerWriter{
		CreateBatchFunc: func(ctx context.Context, tickers []entity.Ticker) error {
			calls++
			if calls == 2 {
				return ErrDB
			}
			return nil
		},
	}
	source := &mockTickerSource{records: [][]string{{"Acme", "ACME"}}}
	uc := NewIngestUsecase(&mockExchangeStore{}, tickers, source)

	results, err := uc.Ingest(context.Background(), []string{"XNY", "XNAS", "XASE"}, IngestOptions{})

	assert.ErrorIs(t, err, ErrDB)
	assert.Contains(t, err.Error(), "XNAS")
	assert.Len(t, results, 1)
	assert.Equal(t, 2, source.calls)
}
