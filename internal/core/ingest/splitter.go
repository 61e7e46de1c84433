package ingest

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chunk is one span of source text destined for embedding and storage.
type Chunk struct {
	ChunkIndex int32
	PageIndex  int32
	Content    string
}

// Splitter cuts extracted text into chunks on Korean sentence boundaries.
// A boundary is sentence-final punctuation followed by whitespace followed by
// a Hangul letter. Chunks are built by greedily appending whole sentences
// until the next one would push the chunk past ChunkSize runes; a single
// sentence longer than ChunkSize becomes its own oversized chunk rather than
// being truncated.
//
// ChunkOverlap is accepted as a configuration knob but trailing content is
// not duplicated between chunks.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	PDF          bool
}

func NewSplitter(chunkSize, chunkOverlap int, pdf bool) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	return &Splitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap, PDF: pdf}
}

var (
	multiNewline  = regexp.MustCompile(`\n{3,}`)
	anyWhitespace = regexp.MustCompile(`\s+`)
)

// SplitText returns the ordered chunk contents for text. Empty input yields
// no chunks.
func (s *Splitter) SplitText(text string) []string {
	if s.PDF {
		text = preprocessPDFText(text)
	}
	return buildChunks(splitSentences(text), s.ChunkSize)
}

// preprocessPDFText normalizes text from paginated sources: collapse runs of
// 3+ newlines, then flatten remaining whitespace.
func preprocessPDFText(text string) string {
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return anyWhitespace.ReplaceAllString(text, " ")
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// splitSentences splits on sentence-final punctuation + whitespace + Hangul.
// Text without any boundary comes back as a single sentence.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	var sents []string
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || !unicode.Is(unicode.Hangul, runes[j]) {
			continue
		}
		sents = append(sents, string(runes[start:i+1]))
		start = j
		i = j - 1
	}
	if start < len(runes) {
		if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
			sents = append(sents, tail)
		}
	}
	return sents
}

// buildChunks packs whole sentences greedily. Sentence lengths are counted in
// runes; the joining space is not counted.
func buildChunks(sents []string, chunkSize int) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0

	for _, sent := range sents {
		sentLen := utf8.RuneCountInString(sent)
		if curLen+sentLen > chunkSize {
			if cur.Len() > 0 {
				chunks = append(chunks, strings.TrimSpace(cur.String()))
				cur.Reset()
			}
			cur.WriteString(sent)
			curLen = sentLen
		} else {
			if cur.Len() > 0 {
				cur.WriteString(" ")
			}
			cur.WriteString(sent)
			curLen += sentLen
		}
	}
	if cur.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(cur.String()))
	}
	return chunks
}

// BuildChunks runs the splitter over page texts and assigns chunk and page
// indexes for storage.
func (s *Splitter) BuildChunks(pages []string) []Chunk {
	chunks := make([]Chunk, 0, 128)
	chunkIdx := int32(0)
	for pageIdx, page := range pages {
		for _, content := range s.SplitText(page) {
			chunks = append(chunks, Chunk{
				ChunkIndex: chunkIdx,
				PageIndex:  int32(pageIdx + 1),
				Content:    content,
			})
			chunkIdx++
		}
	}
	return chunks
}
