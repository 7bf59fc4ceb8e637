package models

// Totals holds the aggregate sums for one report side.
type Totals struct {
	Count       int     `json:"count"`
	PISTotal    float64 `json:"pisTotal"`
	COFINSTotal float64 `json:"cofinsTotal"`
	GrandTotal  float64 `json:"grandTotal"`
}

// Report is the ordered collection of records for one direction plus its
// aggregates. Record order preserves file order so report output is
// reproducible and diffable.
type Report struct {
	Direction Direction           `json:"direction"`
	Records   []TransactionRecord `json:"records"`
	Totals    Totals              `json:"totals"`
}

// ReportSet is the full output of one processing run: both directions
// plus the run diagnostics. A run owns its ReportSet; nothing is shared
// across runs.
type ReportSet struct {
	Inbound     Report      `json:"inbound"`
	Outbound    Report      `json:"outbound"`
	Diagnostics Diagnostics `json:"diagnostics"`
}
