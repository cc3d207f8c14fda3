package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/config"
	"trading-journal/internal/journal/dto"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheet struct {
	mu       sync.Mutex
	requests []*http.Request
	forms    []map[string]string
	handler  func(w http.ResponseWriter, r *http.Request)
}

func newFakeSheet(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*fakeSheet, SpreadsheetRepository) {
	t.Helper()
	fs := &fakeSheet{handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form := map[string]string{}
		for k := range r.Form {
			form[k] = r.Form.Get(k)
		}
		fs.mu.Lock()
		fs.requests = append(fs.requests, r)
		fs.forms = append(fs.forms, form)
		fs.mu.Unlock()
		fs.handler(w, r)
	}))
	t.Cleanup(srv.Close)

	repo := NewSpreadsheetRepository(config.Spreadsheet{
		BaseURL:             srv.URL + "/exec",
		Timeout:             time.Second,
		MaxRequestPerMinute: 6000,
	}, logger.NewNop())
	return fs, repo
}

func TestSpreadsheetLoadAll(t *testing.T) {
	_, repo := newFakeSheet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "getData", r.URL.Query().Get("action"))
		w.Write([]byte(`{"data":[
			["ID","Tanggal Masuk","Tanggal Keluar","Kode","Masuk","Keluar","Lot","FeeBuy","FeeSell","TotalFee","PL","Metode","Catatan","PositionData"],
			["TRX-1","2024-01-02T17:00:00.000Z","2024-01-05","bbca",9000,"9200",2,272,462,734,39266,"Swing","note",""],
			["TRX-2","2024-01-03","","TLKM",3000,0,1,45,0,45,0,"Average Down","","{positionId=POS-TLKM-1, transactionType=entry, entryType=initial, currentAvgPrice=3000, currentTotalLot=1, parentPosition=null}"],
			["TRX-3","2024-01-04","","BBRI","x",0,"",0,0,0,0,"","","{\"positionId\":\"POS-BBRI-1\",\"transactionType\":\"entry\"}"],
			["","2024-01-04","","","",0,0,0,0,0,0,"","","not=valid=data, {"]
		]}`))
	})

	records, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	r1 := records[0]
	assert.Equal(t, "TRX-1", r1.ID)
	assert.Equal(t, "2024-01-03", r1.EntryDate, "UTC timestamps are converted to WIB dates")
	assert.Equal(t, "2024-01-05", r1.ExitDate)
	assert.Equal(t, "BBCA", r1.Symbol)
	assert.Equal(t, 9200.0, r1.ExitPrice)
	assert.Equal(t, 39266.0, r1.ProfitLoss)
	assert.Nil(t, r1.PositionData)

	r2 := records[1]
	require.NotNil(t, r2.PositionData)
	assert.Equal(t, "POS-TLKM-1", r2.PositionData.PositionID)
	assert.Equal(t, 1, r2.PositionData.CurrentTotalLot)

	r3 := records[2]
	assert.Equal(t, 0.0, r3.EntryPrice)
	assert.Equal(t, 1, r3.Lot, "missing lot defaults to 1")
	require.NotNil(t, r3.PositionData)

	r4 := records[3]
	assert.NotEmpty(t, r4.ID)
	assert.Equal(t, "UNKNOWN", r4.Symbol)
}

func TestSpreadsheetLoadAllServerError(t *testing.T) {
	_, repo := newFakeSheet(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Sheet not found"}`))
	})
	_, err := repo.LoadAll(context.Background())
	var re *apperror.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Sheet not found", re.Message)
	assert.True(t, apperror.IsRetryable(err))
}

func TestSpreadsheetSaveAll(t *testing.T) {
	fs, repo := newFakeSheet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"success":true}`))
	})

	err := repo.SaveAll(context.Background(), []entity.TradeRecord{
		{ID: "TRX-1", EntryDate: "2024-01-02", Symbol: "BBCA", EntryPrice: 9000, Lot: 1,
			PositionData: &entity.PositionData{PositionID: "POS-1", TransactionType: entity.TransactionTypeEntry}},
	})
	require.NoError(t, err)

	require.Len(t, fs.forms, 1)
	assert.Equal(t, "saveAllData", fs.forms[0]["action"])

	var rows []dto.SheetRecord
	require.NoError(t, json.Unmarshal([]byte(fs.forms[0]["jsonData"]), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "BBCA", rows[0].KodeSaham)
	assert.JSONEq(t, `{"positionId":"POS-1","transactionType":"entry"}`, rows[0].PositionData)
}

func TestSpreadsheetSaveAllFailures(t *testing.T) {
	t.Run("remote error payload", func(t *testing.T) {
		_, repo := newFakeSheet(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"quota"}`))
		})
		err := repo.SaveAll(context.Background(), nil)
		var re *apperror.RemoteError
		assert.ErrorAs(t, err, &re)
	})

	t.Run("non 2xx", func(t *testing.T) {
		_, repo := newFakeSheet(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		err := repo.SaveAll(context.Background(), nil)
		var ne *apperror.NetworkError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, http.StatusBadGateway, ne.StatusCode)
	})

	t.Run("timeout", func(t *testing.T) {
		_, repo := newFakeSheet(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(1500 * time.Millisecond)
			w.Write([]byte(`{}`))
		})
		err := repo.SaveAll(context.Background(), nil)
		var ne *apperror.NetworkError
		require.ErrorAs(t, err, &ne)
		assert.True(t, ne.Timeout)
	})
}

func TestSpreadsheetPortfolio(t *testing.T) {
	fs, repo := newFakeSheet(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "portfolio/summary":
			w.Write([]byte(`{"success":true,"summary":{"totalTopUp":"10000000","totalWithdraw":0,"totalPL":250000,"totalEquity":10250000,"availableCash":10250000,"growthPercent":2.5,"lastUpdated":"2024-05-01T10:00:00Z"}}`))
		case "portfolio/transactions":
			w.Write([]byte(`{"success":true,"transactions":[{"id":"TX-1","type":"TOP_UP","amount":10000000,"method":"BANK_TRANSFER","notes":"","timestamp":"2024-04-01T08:00:00Z"}]}`))
		case "portfolio/update":
			w.Write([]byte(`{"success":true}`))
		case "portfolio/add":
			w.Write([]byte(`{"success":true,"id":"TX-2"}`))
		case "portfolio/delete":
			w.Write([]byte(`{"success":false,"message":"not found"}`))
		}
	})
	ctx := context.Background()

	summary, err := repo.GetSummary(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, int64(10000000), summary.TotalTopUp)
	assert.Equal(t, int64(250000), summary.TotalPL)
	assert.Equal(t, 2.5, summary.GrowthPercent)

	txs, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.PortfolioTransactionTopUp, txs[0].Type)

	require.NoError(t, repo.UpdateSummary(ctx, entity.PortfolioSummary{TotalTopUp: 5, TotalPL: -2, TotalEquity: 3, GrowthPercent: -40}))

	added, err := repo.AddTransaction(ctx, entity.PortfolioTransaction{Type: entity.PortfolioTransactionWithdraw, Amount: 500000, Notes: "  "})
	require.NoError(t, err)
	assert.Equal(t, "TX-2", added.ID)
	assert.Equal(t, "BANK_TRANSFER", added.Method)

	err = repo.DeleteTransaction(ctx, "TX-404")
	var re *apperror.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "not found", re.Message)

	forms := fs.forms
	assert.NotEmpty(t, forms[0]["t"], "summary reads carry a cache buster")
	assert.Equal(t, "-2", forms[2]["totalPL"])
	assert.Equal(t, "-40.00", forms[2]["growthPercent"])
	assert.Equal(t, "WITHDRAW", forms[3]["type"])
	_, hasNotes := forms[3]["notes"]
	assert.False(t, hasNotes, "blank notes are not sent")
	assert.Equal(t, "TX-404", forms[4]["id"])
}
