package models

// Constituent is one holding of the tracked fund: an ISIN and its portfolio
// weight. Weights are relative; the aggregator normalizes by their sum, so
// they do not need to add up to 1 or 100.
type Constituent struct {
	ISIN   string
	Weight float64
}

// Quote holds the two prices needed to compute an intraday return for one
// constituent. PreviousClose is always positive.
type Quote struct {
	ISIN          string
	Symbol        string
	PreviousClose float64
	LivePrice     float64
}

// PctChange returns the percentage change of the live price relative to the
// previous close.
func (q Quote) PctChange() float64 {
	return (q.LivePrice - q.PreviousClose) / q.PreviousClose * 100
}

// FetchResult records the outcome of one constituent lookup. Exactly one of
// Quote or Err is set. Failed lookups are excluded from the aggregation, and
// the remaining weights are renormalized over the successful subset.
type FetchResult struct {
	Constituent Constituent
	Quote       *Quote
	Err         error
}

// OK reports whether the lookup succeeded.
func (r FetchResult) OK() bool {
	return r.Err == nil
}

// RunReport summarizes one tracker run.
type RunReport struct {
	FundReturn float64
	Threshold  float64
	Fetched    int
	Skipped    int
	Notify     bool
}
