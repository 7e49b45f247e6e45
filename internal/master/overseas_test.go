package master

import (
	"errors"
	"strings"
	"testing"

	"hantoo_go/internal/domain"
)

var overseasHeader = strings.Join([]string{
	"national_code", "exchange_id", "exchange_code", "exchange_name",
	"symbol", "realtime_symbol", "korea_name", "english_name",
	"security_type", "currency", "float_position", "data_type",
	"base_price", "bid_order_size", "ask_order_size", "market_start_time",
	"market_end_time", "dr_yn", "dr_country_code", "industry_code",
	"index_constituent_yn", "tick_size_type", "classification_code",
	"tick_size_type_detail",
}, "\t")

func overseasRow(symbol, koreaName, englishName string) string {
	fields := make([]string, overseasColumns)
	fields[0] = "US"
	fields[colSymbol] = symbol
	fields[colKoreaName] = koreaName
	fields[colEnglishName] = englishName
	return strings.Join(fields, "\t")
}

func TestOverseasDecoder(t *testing.T) {
	dec := DefaultSources["nasdaq"].Decoder

	t.Run("projects symbol and names", func(t *testing.T) {
		content := overseasHeader + "\n" +
			overseasRow("AAPL", "애플", "APPLE INC") + "\n" +
			overseasRow("TSLA", "테슬라", "TESLA INC")

		records, err := dec.Decode(content, "nasdaq")
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		rec := records[0]
		if rec.ShortCode != "AAPL" || rec.StandardCode != "AAPL" {
			t.Errorf("codes = %q/%q, want AAPL/AAPL", rec.ShortCode, rec.StandardCode)
		}
		if rec.KoreanName != "애플" {
			t.Errorf("KoreanName = %q, want 애플", rec.KoreanName)
		}
		if rec.EnglishName != "APPLE INC" {
			t.Errorf("EnglishName = %q, want APPLE INC", rec.EnglishName)
		}
	})

	t.Run("tolerates short rows", func(t *testing.T) {
		// only the leading 7 columns: english_name and everything after
		// are missing, which is fine
		row := strings.Join([]string{"US", "512", "NAS", "나스닥", "MSFT", "MSFT", "마이크로 소프트"}, "\t")

		records, err := dec.Decode(overseasHeader+"\n"+row, "nasdaq")
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("got %d records, want 1", len(records))
		}
		if records[0].KoreanName != "마이크로소프트" {
			t.Errorf("KoreanName = %q, want 마이크로소프트", records[0].KoreanName)
		}
		if records[0].EnglishName != "" {
			t.Errorf("EnglishName = %q, want empty", records[0].EnglishName)
		}
	})

	t.Run("drops rows missing the name column", func(t *testing.T) {
		content := overseasHeader + "\n" +
			"US\t512\tNAS\t나스닥\tGOOG\n" + // too short, dropped
			overseasRow("NVDA", "엔비디아", "NVIDIA CORP")

		records, err := dec.Decode(content, "nasdaq")
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if len(records) != 1 || records[0].ShortCode != "NVDA" {
			t.Fatalf("expected only NVDA, got %+v", records)
		}
	})

	t.Run("unusable schema fails with ParseError", func(t *testing.T) {
		_, err := dec.Decode("not\ta\tmaster\tfile", "nasdaq")
		if err == nil {
			t.Fatal("expected ParseError")
		}
		var pe *domain.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %T, want *domain.ParseError", err)
		}
		if pe.Stage != "schema" {
			t.Errorf("Stage = %q, want schema", pe.Stage)
		}
	})
}
