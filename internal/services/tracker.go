package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arvindkn/fundtracker/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// fetchWorkers bounds concurrent market-data lookups. The aggregation is a
// commutative sum, so completion order does not matter.
const fetchWorkers = 4

// ErrNoData is returned when no constituent could be priced, so no fund
// return can be computed.
var ErrNoData = errors.New("no constituent data available")

// QuoteSource resolves fund constituents to live quotes.
type QuoteSource interface {
	ResolveISIN(ctx context.Context, isin string) (string, error)
	GetQuote(ctx context.Context, isin, symbol string) (*models.Quote, error)
}

// Notifier delivers alert messages.
type Notifier interface {
	Configured() bool
	SendMessage(ctx context.Context, text string) error
}

// Tracker computes the live weighted return of a fund portfolio and raises
// an alert when it falls to or below the configured threshold.
type Tracker struct {
	quotes   QuoteSource
	notifier Notifier
	now      func() time.Time
}

// NewTracker creates a new Tracker
func NewTracker(quotes QuoteSource, notifier Notifier) *Tracker {
	return &Tracker{
		quotes:   quotes,
		notifier: notifier,
		now:      time.Now,
	}
}

// FetchQuotes looks up a quote for every constituent and returns one result
// per constituent, success or failure. A failed lookup never aborts the run;
// the constituent is skipped and the remaining weights renormalize over the
// successful subset.
func (t *Tracker) FetchQuotes(ctx context.Context, constituents []models.Constituent) []models.FetchResult {
	results := make([]models.FetchResult, len(constituents))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchWorkers)
	for i, c := range constituents {
		i, c := i, c
		g.Go(func() error {
			results[i] = t.fetchOne(ctx, c)
			return nil
		})
	}
	// Workers only record per-constituent failures, never return errors.
	_ = g.Wait()

	return results
}

func (t *Tracker) fetchOne(ctx context.Context, c models.Constituent) models.FetchResult {
	symbol, err := t.quotes.ResolveISIN(ctx, c.ISIN)
	if err != nil {
		log.Warnf("Skipping %s: %v", c.ISIN, err)
		return models.FetchResult{Constituent: c, Err: fmt.Errorf("failed to resolve %s: %w", c.ISIN, err)}
	}

	quote, err := t.quotes.GetQuote(ctx, c.ISIN, symbol)
	if err != nil {
		log.Warnf("Skipping %s (%s): %v", c.ISIN, symbol, err)
		return models.FetchResult{Constituent: c, Err: fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)}
	}

	log.Infof("Fetched %s (%s): prev close %.2f, live %.2f (%+.2f%%)",
		c.ISIN, symbol, quote.PreviousClose, quote.LivePrice, quote.PctChange())
	return models.FetchResult{Constituent: c, Quote: quote}
}

// Aggregate computes the fund-level return: the weighted mean of the
// percentage changes of the successfully fetched constituents. Weights are
// normalized by their sum, so uniformly scaling all weights does not change
// the result. Returns ErrNoData when no usable weight remains.
func Aggregate(results []models.FetchResult) (float64, error) {
	var pctChanges, weights []float64
	var totalWeight float64
	for _, r := range results {
		if !r.OK() {
			continue
		}
		pctChanges = append(pctChanges, r.Quote.PctChange())
		weights = append(weights, r.Constituent.Weight)
		totalWeight += r.Constituent.Weight
	}

	if totalWeight == 0 {
		return 0, ErrNoData
	}

	return stat.Mean(pctChanges, weights), nil
}

// ShouldNotify reports whether fundReturn warrants an alert. The comparison
// is inclusive: a return exactly at the threshold triggers.
func ShouldNotify(fundReturn, threshold float64) bool {
	return fundReturn <= threshold
}

// Run executes one tracking pass: fetch all quotes, aggregate, evaluate the
// threshold and send the alert if it triggers. Notification failures are
// logged as warnings; the computation already succeeded.
func (t *Tracker) Run(ctx context.Context, constituents []models.Constituent, threshold float64) (*models.RunReport, error) {
	results := t.FetchQuotes(ctx, constituents)

	fetched := 0
	for _, r := range results {
		if r.OK() {
			fetched++
		}
	}

	fundReturn, err := Aggregate(results)
	if err != nil {
		return nil, err
	}

	report := &models.RunReport{
		FundReturn: fundReturn,
		Threshold:  threshold,
		Fetched:    fetched,
		Skipped:    len(constituents) - fetched,
		Notify:     ShouldNotify(fundReturn, threshold),
	}

	if !report.Notify {
		log.Infof("Fund return %.2f%% above threshold %.2f%%, no alert", fundReturn, threshold)
		return report, nil
	}

	log.Infof("Investment opportunity found! Fund down %.2f%% (threshold %.2f%%)", fundReturn, threshold)
	if !t.notifier.Configured() {
		log.Warn("Telegram credentials not configured, skipping notification")
		return report, nil
	}
	if err := t.notifier.SendMessage(ctx, t.FormatAlert(fundReturn)); err != nil {
		log.Warnf("Failed to send Telegram notification: %v", err)
		return report, nil
	}
	log.Info("Telegram notification sent")

	return report, nil
}

// FormatAlert builds the HTML alert message with the current IST timestamp.
func (t *Tracker) FormatAlert(fundReturn float64) string {
	now := t.now().In(istLocation())
	return fmt.Sprintf(`🚨 <b>Investment Opportunity Alert!</b>

📊 Portfolio down: <b>%.2f%%</b>
⏰ Time: %s

Remember to invest before 2:30 PM IST for same day NAV!`,
		fundReturn, now.Format("2006-01-02 15:04:05 MST"))
}
