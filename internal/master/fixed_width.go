package master

import (
	"strings"

	"hantoo_go/internal/domain"
)

// frontDecoder handles the KOSPI/KOSDAQ master layout. Each line carries a
// fixed-width front section followed by a numeric tail of `trailer`
// characters that this decoder ignores; the front holds a 9-char short
// code, a 12-char standard code and the Korean name. Lines shorter than
// minLine are trailing records of other kinds and are dropped. Widths are
// in characters of the decoded text, not bytes.
type frontDecoder struct {
	minLine int
	trailer int
}

func (d frontDecoder) Decode(content, exchange string) ([]domain.Instrument, error) {
	var out []domain.Instrument
	for _, line := range strings.Split(content, "\n") {
		row := []rune(strings.TrimRight(line, "\r"))
		if len(row) < d.minLine {
			continue
		}
		front := row[:len(row)-d.trailer]
		if len(front) < 21 {
			continue
		}
		rec := domain.Instrument{
			ShortCode:    strings.TrimSpace(string(front[0:9])),
			StandardCode: strings.TrimSpace(string(front[9:21])),
			KoreanName:   collapseName(string(front[21:])),
			Exchange:     exchange,
		}
		if rec.ShortCode == "" || rec.KoreanName == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// konexDecoder handles the KONEX master layout: lines are stripped first,
// the code fields sit at fixed offsets, and long-form records carry a
// 184-char trailer after the name that is discarded. The 205/184 split
// mirrors the vendor file layout; verify against live KONEX masters
// before changing it.
type konexDecoder struct{}

func (konexDecoder) Decode(content, exchange string) ([]domain.Instrument, error) {
	var out []domain.Instrument
	for _, line := range strings.Split(content, "\n") {
		row := []rune(strings.TrimSpace(line))
		if len(row) < 50 {
			continue
		}
		name := string(row[21:])
		if len(row) > 205 {
			name = string(row[21 : len(row)-184])
		}
		rec := domain.Instrument{
			ShortCode:    strings.TrimSpace(string(row[0:9])),
			StandardCode: strings.TrimSpace(string(row[9:21])),
			KoreanName:   collapseName(name),
			Exchange:     exchange,
		}
		if rec.ShortCode == "" || rec.KoreanName == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
