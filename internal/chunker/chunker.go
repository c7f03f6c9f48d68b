package chunker

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

type Option func(*options)

type options struct {
	chunkSize int
	overlap   int
}

func WithChunkSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.chunkSize = size
		}
	}
}

func WithOverlap(overlap int) Option {
	return func(o *options) {
		if overlap >= 0 {
			o.overlap = overlap
		}
	}
}

var breakChars = []byte{'\n', '.', '!', '?'}

// Split cuts text into overlapping windows of at most the chunk size. When a
// window does not end at the end of the text, it is shortened to end one
// character after the last newline or sentence-terminal mark found inside it,
// so chunks break on natural boundaries. If no break character occurs in the
// window, the hard boundary stands, backed off to the nearest rune start so
// chunk edges stay valid UTF-8. Successive chunk starts strictly increase,
// so the sequence is always finite.
func Split(text string, opts ...Option) []string {
	o := options{chunkSize: DefaultChunkSize, overlap: DefaultOverlap}
	for _, opt := range opts {
		opt(&o)
	}

	if len(text) <= o.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + o.chunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			broke := false
			for _, bc := range breakChars {
				if last := strings.LastIndexByte(text[start:end], bc); last != -1 {
					end = start + last + 1
					broke = true
					break
				}
			}
			// A hard boundary may land inside a multi-byte rune; back it
			// off so no chunk edge carries invalid UTF-8. Break chars are
			// ASCII, so those ends are already aligned.
			if !broke {
				aligned := end
				for aligned > start && !utf8.RuneStart(text[aligned]) {
					aligned--
				}
				if aligned > start {
					end = aligned
				}
			}
		}

		chunks = append(chunks, text[start:end])

		// The final window already covers the tail; re-overlapping from
		// here would only repeat text the previous chunk contains.
		if end == len(text) {
			break
		}

		if next := end - o.overlap; next > start {
			for next < len(text) && !utf8.RuneStart(text[next]) {
				next++
			}
			start = next
		} else {
			start = end
		}
	}

	return chunks
}
