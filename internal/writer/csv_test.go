package writer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fiscalpoint/sped-report-converter/internal/models"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "R$ 0,00"},
		{4.22, "R$ 4,22"},
		{104.94, "R$ 104,94"},
		{1234.56, "R$ 1.234,56"},
		{1234567.89, "R$ 1.234.567,89"},
		{-1234.5, "R$ -1.234,50"},
		{0.1, "R$ 0,10"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBRL(tt.input); got != tt.want {
				t.Errorf("FormatBRL(%v): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "01/12/2023" {
		t.Errorf("got %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("zero date should render empty, got %q", got)
	}
}

func sampleReport() models.Report {
	return models.Report{
		Direction: models.DirectionOutbound,
		Records: []models.TransactionRecord{
			{
				DocNumber:   "12345",
				AccessKey:   "CHAVE",
				IssueDate:   time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
				ItemCode:    "177",
				Description: "HB VPJ COSTELA ANGUS 66X160G",
				NCM:         "02023000",
				CFOP:        "5102",
				PISBase:     256.36,
				PISValue:    4.22,
				COFINSBase:  256.36,
				COFINSValue: 19.48,
				Total:       23.70,
			},
		},
		Totals: models.Totals{Count: 1, PISTotal: 4.22, COFINSTotal: 19.48, GrandTotal: 23.70},
	}
}

func TestCSVWriterWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "Número NF,Chave de Acesso") {
		t.Errorf("unexpected header: %q", lines[0])
	}

	row := lines[1]
	for _, want := range []string{"12345", "01/12/2023", "177", "HB VPJ COSTELA ANGUS 66X160G", "02023000", "5102", "R$ 4,22", "R$ 19,48", "R$ 23,70"} {
		if !strings.Contains(row, want) {
			t.Errorf("row missing %q: %q", want, row)
		}
	}
}

func TestCSVWriterBOM(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeBOM: true}
	if err := w.Write(&buf, models.Report{Direction: models.DirectionInbound}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("expected UTF-8 BOM prefix")
	}
}

func TestCSVWriterEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, models.Report{Direction: models.DirectionInbound}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("empty report should still have its header, got %d lines", len(lines))
	}
}
