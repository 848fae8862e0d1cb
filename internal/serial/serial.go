package serial

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SequenceDigits is the zero-padded width of the sequence part of a
// formatted serial.
const SequenceDigits = 7

// Format renders a serial string, e.g. Format("TN01", 5) == "TN01 0000005".
func Format(seriesCode string, seq int64) string {
	return fmt.Sprintf("%s %0*d", seriesCode, SequenceDigits, seq)
}

// FormatBlock renders count consecutive serials starting at start.
func FormatBlock(seriesCode string, start int64, count int) []string {
	serials := make([]string, 0, count)
	for i := 0; i < count; i++ {
		serials = append(serials, Format(seriesCode, start+int64(i)))
	}
	return serials
}

// DecodeStored normalizes one persisted serials value into tokens. New
// rows store a JSON array of strings; legacy rows may hold a JSON string
// or raw text, either of which can be a single comma-joined list.
func DecodeStored(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return splitTokens(list)
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return splitTokens([]string{single})
	}

	return splitTokens([]string{string(raw)})
}

func splitTokens(values []string) []string {
	var tokens []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tokens = append(tokens, part)
			}
		}
	}
	return tokens
}

// Sequence extracts the sequence number from one token: the digit run
// immediately following the series code, with an optional single space in
// between. Tokens that don't match the series yield false.
func Sequence(seriesCode, token string) (int64, bool) {
	token = strings.TrimSpace(token)
	if len(token) <= len(seriesCode) {
		return 0, false
	}
	if !strings.EqualFold(token[:len(seriesCode)], seriesCode) {
		return 0, false
	}

	rest := token[len(seriesCode):]
	rest = strings.TrimPrefix(rest, " ")
	if rest == "" {
		return 0, false
	}

	seq, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// MaxSequence scans normalized history tokens and returns the highest
// sequence number issued for the series, or zero when none match.
func MaxSequence(seriesCode string, stored []string) int64 {
	var max int64
	for _, token := range splitTokens(stored) {
		if seq, ok := Sequence(seriesCode, token); ok && seq > max {
			max = seq
		}
	}
	return max
}
