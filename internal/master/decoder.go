package master

import (
	"strings"

	"hantoo_go/internal/domain"
)

// Decoder converts decoded master-file text into instrument rows for one
// exchange. Implementations never fail on individual lines; anomalous
// lines are dropped silently.
type Decoder interface {
	Decode(content, exchange string) ([]domain.Instrument, error)
}

// Source binds one exchange id to its vendor download URL and master
// format decoder.
type Source struct {
	URL     string
	Decoder Decoder
}

// DefaultSources maps every registry exchange to its vendor URL and
// decoder. The binding is fixed at startup, never resolved per call.
var DefaultSources = map[string]Source{
	"kospi":  {URL: "https://new.real.download.dws.co.kr/common/master/kospi_code.mst.zip", Decoder: frontDecoder{minLine: 230, trailer: 228}},
	"kosdaq": {URL: "https://new.real.download.dws.co.kr/common/master/kosdaq_code.mst.zip", Decoder: frontDecoder{minLine: 224, trailer: 222}},
	"konex":  {URL: "https://new.real.download.dws.co.kr/common/master/konex_code.mst.zip", Decoder: konexDecoder{}},
	"nasdaq": {URL: "https://new.real.download.dws.co.kr/common/master/nasmst.cod.zip", Decoder: overseasDecoder{}},
	"nyse":   {URL: "https://new.real.download.dws.co.kr/common/master/nysmst.cod.zip", Decoder: overseasDecoder{}},
	"amex":   {URL: "https://new.real.download.dws.co.kr/common/master/amsmst.cod.zip", Decoder: overseasDecoder{}},
}

// collapseName trims a raw name field and removes internal spaces, the
// normalization every master format shares.
func collapseName(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}
