package domain

// MarketClass distinguishes domestic (KRX) markets from overseas ones
type MarketClass string

const (
	MarketDomestic MarketClass = "domestic"
	MarketOverseas MarketClass = "overseas"
)

// Exchange describes one supported exchange. The registry is compiled-in
// and immutable for the process lifetime.
type Exchange struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"` // 한글 표시명
	Country string      `json:"country"`
	Class   MarketClass `json:"type"`
}

// ExchangeOrder fixes the iteration order for multi-exchange operations.
// Search cutoff and first-match lookup both depend on this order being stable.
var ExchangeOrder = []string{"kospi", "kosdaq", "konex", "nasdaq", "nyse", "amex"}

// Exchanges is the static exchange registry keyed by id.
var Exchanges = map[string]Exchange{
	"kospi":  {ID: "kospi", Name: "코스피", Country: "KR", Class: MarketDomestic},
	"kosdaq": {ID: "kosdaq", Name: "코스닥", Country: "KR", Class: MarketDomestic},
	"konex":  {ID: "konex", Name: "코넥스", Country: "KR", Class: MarketDomestic},
	"nasdaq": {ID: "nasdaq", Name: "나스닥", Country: "US", Class: MarketOverseas},
	"nyse":   {ID: "nyse", Name: "뉴욕", Country: "US", Class: MarketOverseas},
	"amex":   {ID: "amex", Name: "아멕스", Country: "US", Class: MarketOverseas},
}

// KnownExchange reports whether id is in the registry.
func KnownExchange(id string) bool {
	_, ok := Exchanges[id]
	return ok
}

// ExchangeName returns the display name for an exchange id, or the id
// itself when unknown.
func ExchangeName(id string) string {
	if ex, ok := Exchanges[id]; ok {
		return ex.Name
	}
	return id
}
