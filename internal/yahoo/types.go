package yahoo

// SearchResponse represents the Yahoo Finance symbol search response
type SearchResponse struct {
	Quotes []SearchQuote `json:"quotes"`
}

// SearchQuote is one match from the search endpoint
type SearchQuote struct {
	Symbol    string `json:"symbol"`
	QuoteType string `json:"quoteType"`
	Exchange  string `json:"exchange"`
	ExchDisp  string `json:"exchDisp"`
	ShortName string `json:"shortname"`
}

// ChartResponse represents the Yahoo Finance chart response; only the meta
// block is used, which carries both the live price and the previous close.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartResult is one result entry of the chart response
type ChartResult struct {
	Meta ChartMeta `json:"meta"`
}

// ChartMeta carries the quote fields of a chart result
type ChartMeta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
	PreviousClose      float64 `json:"previousClose"`
}

// ChartError is the error block of the chart response
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
