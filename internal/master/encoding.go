package master

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"

	"hantoo_go/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type encodingCandidate struct {
	name   string
	decode func(raw []byte) (string, bool)
}

// encodingCandidates are tried in order; KRX masters ship in the legacy
// Korean encoding so it goes first. x/text's EUC-KR tables cover the full
// CP949 (UHC) repertoire, so one codec serves both legacy names.
var encodingCandidates = []encodingCandidate{
	{"euc-kr", decodeEUCKR},
	{"utf-8", decodePlainUTF8},
	{"utf-8-sig", decodeUTF8Sig},
}

// DecodeMasterText decodes raw master-file bytes with the first candidate
// encoding that produces a clean full decode. A candidate either decodes
// the whole payload or is rejected; no partial output is accepted.
func DecodeMasterText(raw []byte) (string, error) {
	tried := make([]string, 0, len(encodingCandidates))
	for _, c := range encodingCandidates {
		if s, ok := c.decode(raw); ok {
			return s, nil
		}
		tried = append(tried, c.name)
	}
	return "", &domain.DecodeError{Tried: tried}
}

func decodeEUCKR(raw []byte) (string, bool) {
	out, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	s := string(out)
	// the decoder substitutes U+FFFD for invalid sequences instead of
	// erroring; any replacement rune means the decode was not clean
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}

func decodePlainUTF8(raw []byte) (string, bool) {
	if bytes.HasPrefix(raw, utf8BOM) || !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

func decodeUTF8Sig(raw []byte) (string, bool) {
	if !bytes.HasPrefix(raw, utf8BOM) {
		return "", false
	}
	body := raw[len(utf8BOM):]
	if !utf8.Valid(body) {
		return "", false
	}
	return string(body), true
}
