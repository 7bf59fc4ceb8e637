package parser

import (
	"errors"

	"github.com/fiscalpoint/sped-report-converter/internal/models"
)

// ErrUnclassified is returned for CFOPs whose leading digit maps to
// neither direction. Such records stay out of both reports but are
// always counted, never silently dropped.
var ErrUnclassified = errors.New("unclassifiable CFOP")

// Classify derives the transaction direction from the CFOP's first
// digit: 1, 2 and 3 are inbound operations, 5, 6 and 7 outbound.
func Classify(cfop string) (models.Direction, error) {
	if cfop == "" {
		return models.DirectionUnknown, ErrUnclassified
	}
	switch cfop[0] {
	case '1', '2', '3':
		return models.DirectionInbound, nil
	case '5', '6', '7':
		return models.DirectionOutbound, nil
	default:
		return models.DirectionUnknown, ErrUnclassified
	}
}
