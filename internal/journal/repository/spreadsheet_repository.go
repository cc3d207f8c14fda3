package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/config"
	"trading-journal/internal/journal/dto"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const sheetColumns = 14

// SpreadsheetRepository talks to the spreadsheet web app that stores the
// transaction log, the portfolio summary and the cash-flow transactions.
type SpreadsheetRepository interface {
	LoadAll(ctx context.Context) ([]entity.TradeRecord, error)
	SaveAll(ctx context.Context, records []entity.TradeRecord) error
	GetSummary(ctx context.Context) (*entity.PortfolioSummary, error)
	UpdateSummary(ctx context.Context, summary entity.PortfolioSummary) error
	ListTransactions(ctx context.Context) ([]entity.PortfolioTransaction, error)
	AddTransaction(ctx context.Context, tx entity.PortfolioTransaction) (entity.PortfolioTransaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type spreadsheetRepository struct {
	cfg            config.Spreadsheet
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	now            func() time.Time
}

// NewSpreadsheetRepository creates a client for the spreadsheet web app.
func NewSpreadsheetRepository(cfg config.Spreadsheet, log *logger.Logger) SpreadsheetRepository {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &spreadsheetRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		now:            utils.TimeNowWIB,
	}
}

func (r *spreadsheetRepository) LoadAll(ctx context.Context) ([]entity.TradeRecord, error) {
	body, err := r.get(ctx, "getData", nil)
	if err != nil {
		return nil, err
	}

	var resp dto.SheetDataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &apperror.RemoteError{Op: "getData", Message: "invalid response body: " + err.Error()}
	}
	if resp.Error != "" {
		return nil, &apperror.RemoteError{Op: "getData", Message: resp.Error}
	}

	records := make([]entity.TradeRecord, 0, len(resp.Data))
	for i, row := range resp.Data {
		if i == 0 && len(row) > 0 && row[0].String() == "ID" {
			continue
		}
		records = append(records, r.rowToRecord(ctx, row))
	}
	return records, nil
}

func (r *spreadsheetRepository) rowToRecord(ctx context.Context, row []dto.SheetCell) entity.TradeRecord {
	for len(row) < sheetColumns {
		row = append(row, dto.SheetCell{})
	}

	rec := entity.TradeRecord{
		ID:         row[0].String(),
		EntryDate:  utils.NormalizeDate(row[1].String()),
		ExitDate:   utils.NormalizeDate(row[2].String()),
		Symbol:     strings.ToUpper(strings.TrimSpace(row[3].String())),
		EntryPrice: row[4].Float(),
		ExitPrice:  row[5].Float(),
		Lot:        row[6].Int(),
		BuyFee:     row[7].Float(),
		SellFee:    row[8].Float(),
		TotalFee:   row[9].Float(),
		ProfitLoss: row[10].Float(),
		Method:     row[11].String(),
		Notes:      row[12].String(),
	}
	if rec.ID == "" {
		rec.ID = entity.NewRecordID()
	}
	if rec.Symbol == "" {
		rec.Symbol = "UNKNOWN"
	}
	if rec.Lot <= 0 {
		rec.Lot = 1
	}

	if text := row[13].String(); text != "" {
		pd, err := entity.ParsePositionData(text)
		if err != nil {
			r.log.WarnContext(ctx, "Ignoring malformed position data",
				logger.StringField("record_id", rec.ID), logger.ErrorField(err))
		} else {
			rec.PositionData = pd
		}
	}
	return rec
}

func (r *spreadsheetRepository) SaveAll(ctx context.Context, records []entity.TradeRecord) error {
	rows := make([]dto.SheetRecord, 0, len(records))
	for _, rec := range records {
		pd, err := entity.SerializePositionData(rec.PositionData)
		if err != nil {
			return fmt.Errorf("serialize position data of %s: %w", rec.ID, err)
		}
		rows = append(rows, dto.SheetRecord{
			ID:            rec.ID,
			TanggalMasuk:  rec.EntryDate,
			TanggalKeluar: rec.ExitDate,
			KodeSaham:     rec.Symbol,
			HargaMasuk:    rec.EntryPrice,
			HargaKeluar:   rec.ExitPrice,
			Lot:           rec.Lot,
			FeeBuy:        rec.BuyFee,
			FeeSell:       rec.SellFee,
			TotalFee:      rec.TotalFee,
			ProfitLoss:    rec.ProfitLoss,
			MetodeTrading: rec.Method,
			Catatan:       rec.Notes,
			PositionData:  pd,
		})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("action", "saveAllData")
	form.Set("jsonData", string(payload))
	body, err := r.sendRequest(ctx, "saveAllData", http.MethodPost, r.cfg.BaseURL, form.Encode())
	if err != nil {
		return err
	}
	return checkResult("saveAllData", body)
}

func (r *spreadsheetRepository) GetSummary(ctx context.Context) (*entity.PortfolioSummary, error) {
	body, err := r.get(ctx, "portfolio/summary", url.Values{"t": {r.cacheBuster()}})
	if err != nil {
		return nil, err
	}
	var resp dto.SheetPortfolioSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &apperror.RemoteError{Op: "portfolio/summary", Message: "invalid response body: " + err.Error()}
	}
	if failed, msg := resp.Failed(); failed {
		return nil, &apperror.RemoteError{Op: "portfolio/summary", Message: msg}
	}
	if resp.Summary == nil {
		return nil, nil
	}
	s := resp.Summary
	summary := &entity.PortfolioSummary{
		TotalTopUp:    int64(s.TotalTopUp.Float()),
		TotalWithdraw: int64(s.TotalWithdraw.Float()),
		TotalPL:       int64(s.TotalPL.Float()),
		TotalEquity:   int64(s.TotalEquity.Float()),
		AvailableCash: int64(s.AvailableCash.Float()),
		GrowthPercent: s.GrowthPercent.Float(),
	}
	if t, err := time.Parse(time.RFC3339, s.LastUpdated.String()); err == nil {
		summary.LastUpdated = t
	}
	return summary, nil
}

func (r *spreadsheetRepository) UpdateSummary(ctx context.Context, summary entity.PortfolioSummary) error {
	params := url.Values{}
	params.Set("totalTopUp", strconv.FormatInt(summary.TotalTopUp, 10))
	params.Set("totalWithdraw", strconv.FormatInt(summary.TotalWithdraw, 10))
	params.Set("totalPL", strconv.FormatInt(summary.TotalPL, 10))
	params.Set("totalEquity", strconv.FormatInt(summary.TotalEquity, 10))
	params.Set("availableCash", strconv.FormatInt(summary.AvailableCash, 10))
	params.Set("growthPercent", strconv.FormatFloat(summary.GrowthPercent, 'f', 2, 64))
	params.Set("lastUpdated", summary.LastUpdated.Format(time.RFC3339))

	body, err := r.get(ctx, "portfolio/update", params)
	if err != nil {
		return err
	}
	return checkResult("portfolio/update", body)
}

func (r *spreadsheetRepository) ListTransactions(ctx context.Context) ([]entity.PortfolioTransaction, error) {
	body, err := r.get(ctx, "portfolio/transactions", url.Values{"t": {r.cacheBuster()}})
	if err != nil {
		return nil, err
	}
	var resp dto.SheetPortfolioTransactionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &apperror.RemoteError{Op: "portfolio/transactions", Message: "invalid response body: " + err.Error()}
	}
	if failed, msg := resp.Failed(); failed {
		return nil, &apperror.RemoteError{Op: "portfolio/transactions", Message: msg}
	}

	txs := make([]entity.PortfolioTransaction, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		txs = append(txs, sheetToTransaction(t))
	}
	return txs, nil
}

func sheetToTransaction(t dto.SheetPortfolioTransaction) entity.PortfolioTransaction {
	tx := entity.PortfolioTransaction{
		ID:     t.ID.String(),
		Type:   entity.PortfolioTransactionType(strings.ToUpper(t.Type.String())),
		Amount: int64(t.Amount.Float()),
		Method: t.Method.String(),
		Notes:  t.Notes.String(),
	}
	if ts, err := time.Parse(time.RFC3339, t.Timestamp.String()); err == nil {
		tx.Timestamp = ts
	}
	return tx
}

func (r *spreadsheetRepository) AddTransaction(ctx context.Context, tx entity.PortfolioTransaction) (entity.PortfolioTransaction, error) {
	method := tx.Method
	if method == "" {
		method = common.DefaultPaymentMethod
	}
	params := url.Values{}
	params.Set("type", string(tx.Type))
	params.Set("amount", strconv.FormatInt(tx.Amount, 10))
	params.Set("method", method)
	if notes := strings.TrimSpace(tx.Notes); notes != "" {
		params.Set("notes", notes)
	}

	body, err := r.get(ctx, "portfolio/add", params)
	if err != nil {
		return entity.PortfolioTransaction{}, err
	}
	var resp dto.SheetAddTransactionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return entity.PortfolioTransaction{}, &apperror.RemoteError{Op: "portfolio/add", Message: "invalid response body: " + err.Error()}
	}
	if failed, msg := resp.Failed(); failed {
		return entity.PortfolioTransaction{}, &apperror.RemoteError{Op: "portfolio/add", Message: msg}
	}

	out := tx
	out.Method = method
	if resp.Transaction != nil {
		out = sheetToTransaction(*resp.Transaction)
	} else if resp.ID != "" {
		out.ID = resp.ID
	}
	if out.Timestamp.IsZero() {
		out.Timestamp = r.now()
	}
	return out, nil
}

func (r *spreadsheetRepository) DeleteTransaction(ctx context.Context, id string) error {
	body, err := r.get(ctx, "portfolio/delete", url.Values{"id": {id}})
	if err != nil {
		return err
	}
	return checkResult("portfolio/delete", body)
}

func (r *spreadsheetRepository) cacheBuster() string {
	return strconv.FormatInt(r.now().UnixMilli(), 10)
}

func (r *spreadsheetRepository) get(ctx context.Context, action string, params url.Values) ([]byte, error) {
	u, err := url.Parse(r.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet base url: %w", err)
	}
	q := u.Query()
	q.Set("action", action)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return r.sendRequest(ctx, action, http.MethodGet, u.String(), "")
}

func (r *spreadsheetRepository) sendRequest(ctx context.Context, op, method, rawURL, form string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("action", op),
		zap.String("method", method),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, &apperror.NetworkError{Op: op, Timeout: isTimeout(err), Err: err}
	}

	var payload io.Reader
	if form != "" {
		payload = strings.NewReader(form)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	if form != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to spreadsheet", fields...)
		return nil, &apperror.NetworkError{Op: op, Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from spreadsheet", fields...)
		return nil, &apperror.NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from spreadsheet", fields...)
		return nil, &apperror.NetworkError{Op: op, Timeout: isTimeout(err), Err: err}
	}

	r.log.DebugContext(ctx, "Spreadsheet request completed", fields...)
	return body, nil
}

func checkResult(op string, body []byte) error {
	var result dto.SheetResult
	if err := json.Unmarshal(body, &result); err != nil {
		return &apperror.RemoteError{Op: op, Message: "invalid response body: " + err.Error()}
	}
	if failed, msg := result.Failed(); failed {
		return &apperror.RemoteError{Op: op, Message: msg}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
