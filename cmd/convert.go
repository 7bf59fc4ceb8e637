package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fiscalpoint/sped-report-converter/internal/config"
	"github.com/fiscalpoint/sped-report-converter/internal/decoder"
	"github.com/fiscalpoint/sped-report-converter/internal/logger"
	"github.com/fiscalpoint/sped-report-converter/internal/parser"
	"github.com/fiscalpoint/sped-report-converter/internal/report"
	"github.com/fiscalpoint/sped-report-converter/internal/writer"
)

var (
	outputDir string
	withXLSX  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert SPED files into inbound/outbound CSV reports",
	Long: `Convert processes one or more SPED .txt or .zip files as a single run
and writes relatorio_entrada.csv and relatorio_saida.csv (and optionally
relatorio.xlsx) to the output directory.

Files are processed in the order given; the product catalog is built
across all of them before documents are assembled.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory for the generated reports")
	convertCmd.Flags().BoolVar(&withXLSX, "xlsx", false, "also write an XLSX workbook")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	log := logger.New(logLevel(cfg.LogLevel))

	payloads := make([]decoder.Payload, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read input %q: %w", path, err)
		}
		payloads = append(payloads, decoder.Payload{Name: path, Data: data})
	}

	dec := &decoder.Decoder{
		MaxFiles: cfg.MaxUploadFiles,
		MaxBytes: cfg.MaxUploadBytes,
	}
	files, err := dec.DecodeAll(payloads)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("inputs contained no .txt files")
	}

	contents := make([]string, len(files))
	for i, f := range files {
		contents[i] = f.Content
	}

	result := parser.New(log).Parse(contents)
	set := report.Build(result)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", outputDir, err)
	}

	csvWriter := &writer.CSVWriter{IncludeBOM: cfg.Export.BOM}
	inboundPath := filepath.Join(outputDir, "relatorio_entrada.csv")
	if err := csvWriter.WriteToFile(inboundPath, set.Inbound); err != nil {
		return err
	}
	outboundPath := filepath.Join(outputDir, "relatorio_saida.csv")
	if err := csvWriter.WriteToFile(outboundPath, set.Outbound); err != nil {
		return err
	}

	if withXLSX || cfg.Export.XLSX {
		xlsxPath := filepath.Join(outputDir, "relatorio.xlsx")
		if err := (&writer.XLSXWriter{}).WriteToFile(xlsxPath, set); err != nil {
			return err
		}
		log.Info().Str("path", xlsxPath).Msg("wrote XLSX workbook")
	}

	log.Info().
		Str("inbound", inboundPath).
		Str("outbound", outboundPath).
		Int("inboundRecords", set.Inbound.Totals.Count).
		Int("outboundRecords", set.Outbound.Totals.Count).
		Int("unclassified", set.Diagnostics.Unclassified).
		Int("malformedLines", set.Diagnostics.MalformedLines).
		Msg("conversion finished")

	return nil
}
