// Package parser implements the SPED EFD-Contribuições record pipeline:
// tokenizing pipe-delimited lines, indexing the 0200 product catalog,
// joining C100 headers to C170 item lines and classifying each resulting
// record by CFOP direction.
package parser

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/fiscalpoint/sped-report-converter/internal/models"
)

// Result is the output of one parsing run: every assembled record in
// input order plus the run's diagnostics.
type Result struct {
	Records     []models.TransactionRecord
	Diagnostics models.Diagnostics
}

// Parser runs the full record pipeline over decoded file contents. Each
// Parse call owns its catalog and assembler; a Parser is reusable across
// runs.
type Parser struct {
	log zerolog.Logger
}

// New returns a Parser that reports data-quality problems on the given
// logger.
func New(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// Parse processes the given files sequentially, in upload order. The
// order matters: duplicate 0200 product codes resolve last-write-wins,
// which is only deterministic with sequential ingestion.
//
// Per-line problems never abort the run; they are counted in the result
// diagnostics so the caller can detect data loss.
func (p *Parser) Parse(files []string) *Result {
	catalog := BuildCatalog(files)

	asm := NewAssembler(catalog)
	diag := models.Diagnostics{FilesRead: len(files)}

	for _, content := range files {
		// Header context never carries over a file boundary.
		asm.Reset()

		for _, raw := range splitLines(content) {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			diag.LinesRead++

			line, err := Tokenize(raw)
			if err != nil {
				diag.MalformedLines++
				continue
			}
			asm.Feed(line)
		}
	}

	diag.Merge(asm.Diagnostics())

	if diag.MalformedLines > 0 || diag.InvalidDates > 0 {
		p.log.Warn().
			Int("malformedLines", diag.MalformedLines).
			Int("invalidDates", diag.InvalidDates).
			Msg("input contained anomalous lines; see diagnostics")
	}
	p.log.Info().
		Int("files", diag.FilesRead).
		Int("lines", diag.LinesRead).
		Int("records", len(asm.Records())).
		Int("catalogEntries", len(catalog)).
		Msg("sped parsing finished")

	return &Result{Records: asm.Records(), Diagnostics: diag}
}

// splitLines splits decoded file content into lines, tolerating both
// Unix and Windows endings (SPED files are produced on either).
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}
