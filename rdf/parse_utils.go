package rdf

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// Unicode surrogate pair constants
const (
	unicodeSurrogateHighStart = 0xD800
	unicodeSurrogateHighEnd   = 0xDBFF
	unicodeSurrogateLowStart  = 0xDC00
	unicodeSurrogateLowEnd    = 0xDFFF
	unicodeSurrogateBase      = 0x10000
)

var errInvalidEscape = errors.New("invalid escape sequence")

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isValidUnicodeCodePoint(codePoint rune) bool {
	if codePoint > 0x10FFFF {
		return false
	}
	return codePoint < unicodeSurrogateHighStart || codePoint > unicodeSurrogateLowEnd
}

// decodeUChar converts 4 or 8 hex digits to a code point, or -1.
func decodeUChar(hexStr string) rune {
	if len(hexStr) != 4 && len(hexStr) != 8 {
		return -1
	}
	var codePoint rune
	for i := 0; i < len(hexStr); i++ {
		ch := hexStr[i]
		var digit rune
		switch {
		case ch >= '0' && ch <= '9':
			digit = rune(ch - '0')
		case ch >= 'a' && ch <= 'f':
			digit = rune(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			digit = rune(ch-'A') + 10
		default:
			return -1
		}
		codePoint = codePoint*16 + digit
	}
	return codePoint
}

// readLineWithLimit reads one line including its terminator. A non-positive
// maxBytes disables the limit.
func readLineWithLimit(reader *bufio.Reader, maxBytes int) (string, error) {
	var buffer []byte
	for {
		part, err := reader.ReadSlice('\n')
		buffer = append(buffer, part...)
		if maxBytes > 0 && len(buffer) > maxBytes {
			discardLine(reader)
			return "", ErrLineTooLong
		}
		switch {
		case err == nil:
			return string(buffer), nil
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && len(buffer) > 0:
			return string(buffer), nil
		default:
			return "", err
		}
	}
}

func discardLine(reader *bufio.Reader) {
	for {
		_, err := reader.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return
		}
	}
}

func checkDecodeContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// UnescapeString decodes escape sequences in RDF string literals.
// It handles simple escapes (\n, \t, etc.), Unicode escapes (\uXXXX), and Unicode long escapes (\UXXXXXXXX).
// Surrogate pairs are supported for \uXXXX sequences.
func UnescapeString(s string) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}
	var builder strings.Builder
	pos := 0
	for pos < len(s) {
		ch := s[pos]
		if ch != '\\' {
			builder.WriteByte(ch)
			pos++
			continue
		}
		if pos+1 >= len(s) {
			return "", errors.New("unterminated escape")
		}
		switch next := s[pos+1]; next {
		case 'n':
			builder.WriteByte('\n')
			pos += 2
		case 't':
			builder.WriteByte('\t')
			pos += 2
		case 'r':
			builder.WriteByte('\r')
			pos += 2
		case 'b':
			builder.WriteByte('\b')
			pos += 2
		case 'f':
			builder.WriteByte('\f')
			pos += 2
		case '"', '\'', '\\':
			builder.WriteByte(next)
			pos += 2
		case 'u':
			advance, err := unescapeUnicodeEscape(&builder, s, pos)
			if err != nil {
				return "", err
			}
			pos += advance
		case 'U':
			if pos+10 > len(s) {
				return "", errInvalidEscape
			}
			codePoint := decodeUChar(s[pos+2 : pos+10])
			if codePoint < 0 || !isValidUnicodeCodePoint(codePoint) {
				return "", errInvalidEscape
			}
			builder.WriteRune(codePoint)
			pos += 10
		default:
			return "", errInvalidEscape
		}
	}
	return builder.String(), nil
}

// unescapeUnicodeEscape handles \uXXXX escape sequences, including surrogate pairs.
func unescapeUnicodeEscape(builder *strings.Builder, s string, pos int) (int, error) {
	if pos+6 > len(s) {
		return 0, errInvalidEscape
	}
	codePoint := decodeUChar(s[pos+2 : pos+6])
	if codePoint < 0 {
		return 0, errInvalidEscape
	}
	if codePoint >= unicodeSurrogateHighStart && codePoint <= unicodeSurrogateHighEnd {
		if pos+12 > len(s) || s[pos+6] != '\\' || s[pos+7] != 'u' {
			return 0, errInvalidEscape
		}
		low := decodeUChar(s[pos+8 : pos+12])
		if low < unicodeSurrogateLowStart || low > unicodeSurrogateLowEnd {
			return 0, errInvalidEscape
		}
		builder.WriteRune(unicodeSurrogateBase + ((codePoint - unicodeSurrogateHighStart) << 10) + (low - unicodeSurrogateLowStart))
		return 12, nil
	}
	if !isValidUnicodeCodePoint(codePoint) {
		return 0, errInvalidEscape
	}
	builder.WriteRune(codePoint)
	return 6, nil
}
