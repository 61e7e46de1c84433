package ingest

import (
	"reflect"
	"testing"
)

func TestSplitSentences_KoreanBoundaries(t *testing.T) {
	text := "한국어 문장입니다. 두 번째 문장입니다! 세 번째입니다."
	got := splitSentences(text)
	want := []string{"한국어 문장입니다.", "두 번째 문장입니다!", "세 번째입니다."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSentences = %q, want %q", got, want)
	}
}

func TestSplitSentences_NoSplitBeforeNonHangul(t *testing.T) {
	// Punctuation followed by a Latin letter is not a boundary.
	text := "Go는 1.21 버전부터 지원합니다. And this part stays attached."
	got := splitSentences(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %q", len(got), got)
	}
}

func TestSplitSentences_NoSplitWithoutWhitespace(t *testing.T) {
	text := "끝.바로 이어집니다."
	got := splitSentences(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %q", len(got), got)
	}
}

func TestSplitSentences_Empty(t *testing.T) {
	if got := splitSentences("   "); got != nil {
		t.Fatalf("expected nil for blank input, got %q", got)
	}
}

func TestBuildChunks_GreedyPacking(t *testing.T) {
	// 5 runes per sentence, the joining space is not counted.
	sents := []string{"가나다라.", "마바사아.", "자차카타."}
	got := buildChunks(sents, 10)
	want := []string{"가나다라. 마바사아.", "자차카타."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buildChunks = %q, want %q", got, want)
	}
}

func TestBuildChunks_OversizedSentenceOwnChunk(t *testing.T) {
	sents := []string{"짧다.", "이것은매우긴문장입니다.", "끝."}
	got := buildChunks(sents, 10)
	want := []string{"짧다.", "이것은매우긴문장입니다.", "끝."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buildChunks = %q, want %q", got, want)
	}
}

func TestSplitText_PDFPreprocessing(t *testing.T) {
	s := NewSplitter(1000, 0, true)
	text := "첫 문장입니다.\n\n\n\n둘째 문장입니다."
	got := s.SplitText(text)
	want := []string{"첫 문장입니다. 둘째 문장입니다."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitText = %q, want %q", got, want)
	}
}

func TestBuildChunks_PageAndChunkIndexes(t *testing.T) {
	s := NewSplitter(5, 0, false)
	pages := []string{"첫째 쪽입니다. 둘째 문장입니다.", "둘째 쪽입니다."}
	chunks := s.BuildChunks(pages)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.ChunkIndex != int32(i) {
			t.Errorf("chunk %d: ChunkIndex = %d", i, ch.ChunkIndex)
		}
	}
	if chunks[0].PageIndex != 1 || chunks[2].PageIndex != 2 {
		t.Errorf("page indexes wrong: %d, %d", chunks[0].PageIndex, chunks[2].PageIndex)
	}
}

func TestSplitText_OverlapDoesNotDuplicate(t *testing.T) {
	s := NewSplitter(10, 200, false)
	got := s.SplitText("가나다라. 마바사아. 자차카타. 파하거너.")
	seen := map[string]bool{}
	for _, chunk := range got {
		for _, sent := range splitSentences(chunk) {
			if seen[sent] {
				t.Fatalf("sentence %q appears in more than one chunk: %q", sent, got)
			}
			seen[sent] = true
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct sentences across chunks, got %d: %q", len(seen), got)
	}
}

func TestNewSplitter_Defaults(t *testing.T) {
	s := NewSplitter(0, -1, false)
	if s.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", s.ChunkSize)
	}
	if s.ChunkOverlap != 0 {
		t.Errorf("ChunkOverlap = %d, want 0", s.ChunkOverlap)
	}
}
