package parser

import "github.com/fiscalpoint/sped-report-converter/internal/models"

// Catalog maps product codes to their 0200 catalog entries. It is built
// once per run and read-only while documents are assembled.
type Catalog map[string]models.ProductEntry

// BuildCatalog scans every line of every file for 0200 records and
// indexes them by product code. A duplicate code overwrites the earlier
// entry: files are scanned sequentially in upload order, so the winner
// is deterministic.
func BuildCatalog(files []string) Catalog {
	catalog := make(Catalog)
	for _, content := range files {
		for _, raw := range splitLines(content) {
			line, err := Tokenize(raw)
			if err != nil || line.RecordType != RecordProduct {
				continue
			}
			entry := parseProduct(line)
			if entry.Code == "" {
				continue
			}
			catalog[entry.Code] = entry
		}
	}
	return catalog
}

// Lookup returns the catalog entry for a product code. A miss yields an
// empty entry and false; it is the caller's job to count it.
func (c Catalog) Lookup(code string) (models.ProductEntry, bool) {
	entry, ok := c[code]
	return entry, ok
}
