package models

import "time"

// Direction classifies a fiscal document line by its CFOP leading digit.
type Direction string

const (
	// DirectionInbound covers CFOPs starting with 1, 2 or 3 (entradas).
	DirectionInbound Direction = "ENTRADA"
	// DirectionOutbound covers CFOPs starting with 5, 6 or 7 (saídas).
	DirectionOutbound Direction = "SAIDA"
	// DirectionUnknown marks lines whose CFOP does not map to either side.
	// They are kept out of both reports but always counted.
	DirectionUnknown Direction = "OUTROS"
)

// ProductEntry is one row of the 0200 product catalog.
type ProductEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	NCM         string `json:"ncm"`
}

// DocumentHeader holds the C100 fields that item lines do not carry
// themselves. It lives only while its document's C170 lines are being
// assembled.
type DocumentHeader struct {
	DocNumber string    `json:"docNumber"`
	AccessKey string    `json:"accessKey"`
	IssueDate time.Time `json:"issueDate"`
}

// TransactionRecord is the denormalized output unit: one C170 item line
// joined with its document header and product catalog entry. Immutable
// once built.
type TransactionRecord struct {
	DocNumber string    `json:"docNumber"`
	AccessKey string    `json:"accessKey"`
	IssueDate time.Time `json:"issueDate"`

	ItemCode    string `json:"itemCode"`
	Description string `json:"description"` // from the 0200 catalog, may be empty
	NCM         string `json:"ncm"`
	CFOP        string `json:"cfop"`

	CSTPIS   string  `json:"cstPis"`
	PISBase  float64 `json:"pisBase"`
	PISRate  float64 `json:"pisRate"`
	PISValue float64 `json:"pisValue"`

	CSTCOFINS   string  `json:"cstCofins"`
	COFINSBase  float64 `json:"cofinsBase"`
	COFINSRate  float64 `json:"cofinsRate"`
	COFINSValue float64 `json:"cofinsValue"`

	// Total is PIS value + COFINS value for the line.
	Total float64 `json:"total"`

	Direction Direction `json:"direction,omitempty"`
}

// Diagnostics counts everything the pipeline skipped or substituted, so
// callers can detect silent data loss. No error is swallowed without
// being counted here.
type Diagnostics struct {
	FilesRead       int `json:"filesRead"`
	LinesRead       int `json:"linesRead"`
	MalformedLines  int `json:"malformedLines"`
	InvalidDates    int `json:"invalidDates"`
	HeaderlessItems int `json:"headerlessItems"`
	CatalogMisses   int `json:"catalogMisses"`
	Unclassified    int `json:"unclassified"`
}

// Merge adds the counts of other into d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.FilesRead += other.FilesRead
	d.LinesRead += other.LinesRead
	d.MalformedLines += other.MalformedLines
	d.InvalidDates += other.InvalidDates
	d.HeaderlessItems += other.HeaderlessItems
	d.CatalogMisses += other.CatalogMisses
	d.Unclassified += other.Unclassified
}
