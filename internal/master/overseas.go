package master

import (
	"fmt"
	"strings"

	"hantoo_go/internal/domain"
)

// Overseas masters are tab-delimited with a fixed 24-column schema:
// national code, exchange id/code/name, symbol, realtime symbol, Korean
// and English names, security type, currency, pricing and tick metadata.
// Only symbol, korea_name and english_name are projected into the
// unified record.
const (
	colSymbol       = 4
	colKoreaName    = 6
	colEnglishName  = 7
	overseasColumns = 24
)

type overseasDecoder struct{}

func (overseasDecoder) Decode(content, exchange string) ([]domain.Instrument, error) {
	lines := strings.Split(content, "\n")

	// first line is consumed as the header row
	header := strings.Split(strings.TrimRight(lines[0], "\r"), "\t")
	if len(header) <= colKoreaName {
		return nil, &domain.ParseError{
			Stage: "schema",
			Err:   fmt.Errorf("overseas master has %d columns, need at least %d", len(header), colKoreaName+1),
		}
	}

	var out []domain.Instrument
	for _, line := range lines[1:] {
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		// short rows keep only the leading columns; anything past
		// english_name is ignored either way
		if len(fields) <= colKoreaName {
			continue
		}
		symbol := strings.TrimSpace(fields[colSymbol])
		rec := domain.Instrument{
			ShortCode:    symbol,
			StandardCode: symbol,
			KoreanName:   collapseName(fields[colKoreaName]),
			Exchange:     exchange,
		}
		if len(fields) > colEnglishName {
			rec.EnglishName = strings.TrimSpace(fields[colEnglishName])
		}
		if rec.ShortCode == "" || rec.KoreanName == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
