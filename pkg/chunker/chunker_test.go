package chunker

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks []string
	}{
		{
			name:       "empty text",
			text:       "",
			chunkSize:  100,
			overlap:    10,
			wantChunks: []string{},
		},
		{
			name:       "text shorter than chunk size",
			text:       "A short document.",
			chunkSize:  100,
			overlap:    10,
			wantChunks: []string{"A short document."},
		},
		{
			name:      "no overlap exact windows",
			text:      "abcdefghij",
			chunkSize: 5,
			overlap:   0,
			wantChunks: []string{
				"abcde",
				"fghij",
			},
		},
		{
			name:      "overlap repeats tail of previous chunk",
			text:      "abcdefghij",
			chunkSize: 6,
			overlap:   2,
			wantChunks: []string{
				"abcdef",
				"efghij",
				"ij",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.text, tt.chunkSize, tt.overlap)
			if err != nil {
				t.Fatalf("Split returned error: %v", err)
			}
			if len(got) != len(tt.wantChunks) {
				t.Fatalf("chunk count = %d, want %d (%q)", len(got), len(tt.wantChunks), got)
			}
			for i := range got {
				if got[i] != tt.wantChunks[i] {
					t.Errorf("chunk[%d] = %q, want %q", i, got[i], tt.wantChunks[i])
				}
			}
		})
	}
}

func TestSplitSentenceSnap(t *testing.T) {
	// Period at 90% of the window: the cut should snap to just after it
	// instead of slicing mid-sentence.
	text := strings.Repeat("a", 89) + "." + strings.Repeat("b", 60)
	chunks, err := Split(text, 100, 10)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at sentence boundary, got %q", chunks[0])
	}
	if len(chunks[0]) != 90 {
		t.Errorf("first chunk length = %d, want 90", len(chunks[0]))
	}
}

func TestSplitSnapIgnoresEarlyPeriod(t *testing.T) {
	// Period at 50% of the window is too early; the window keeps its
	// fixed-width cut.
	text := strings.Repeat("a", 49) + "." + strings.Repeat("b", 100)
	chunks, err := Split(text, 100, 10)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(chunks[0]) != 100 {
		t.Errorf("first chunk length = %d, want 100", len(chunks[0]))
	}
}

func TestSplitInvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"overlap equals chunk size", 100, 100},
		{"overlap exceeds chunk size", 100, 150},
		{"zero chunk size", 0, 0},
		{"negative overlap", 100, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split("some text", tt.chunkSize, tt.overlap); err == nil {
				t.Errorf("Split(chunkSize=%d, overlap=%d) should fail", tt.chunkSize, tt.overlap)
			}
		})
	}
}

func TestSplitCoversWholeText(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)
	chunkSize, overlap := 200, 40

	chunks, err := Split(text, chunkSize, overlap)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}

	// Every chunk fits inside the window and nothing from the source is lost:
	// each chunk (pre-trim) must appear in the original text in order.
	cursor := 0
	for i, chunk := range chunks {
		if len([]rune(chunk)) > chunkSize {
			t.Errorf("chunk[%d] length %d exceeds chunk size %d", i, len(chunk), chunkSize)
		}
		idx := strings.Index(text[cursor:], chunk)
		if idx < 0 {
			t.Fatalf("chunk[%d] not found in source after offset %d", i, cursor)
		}
		cursor += idx
	}
}
