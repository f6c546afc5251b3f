package chunker

import (
	"fmt"
	"strings"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200

	// Minimum fraction of the window a sentence boundary must cover
	// before we prefer it over a fixed-width cut.
	sentenceSnapRatio = 0.8
)

// Split divides text into overlapping chunks of approximately chunkSize runes.
// When a window ends mid-text, the cut snaps back to the last sentence-ending
// period if that period sits deep enough into the window. Consecutive chunks
// share 'overlap' runes to preserve context across boundaries.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunker: chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunker: overlap must be non-negative, got %d", overlap)
	}
	if overlap >= chunkSize {
		// The window would never advance.
		return nil, fmt.Errorf("chunker: overlap (%d) must be smaller than chunk size (%d)", overlap, chunkSize)
	}

	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return []string{}, nil
	}

	var chunks []string
	start := 0

	for start < textLen {
		end := start + chunkSize
		windowEnd := end
		if windowEnd > textLen {
			windowEnd = textLen
		}
		window := runes[start:windowEnd]

		// Snap to the last sentence boundary, but only when the window was
		// actually truncated and the boundary is deep enough to keep chunks
		// close to their target size.
		if end < textLen {
			lastPeriod := lastIndexRune(window, '.')
			if lastPeriod > int(float64(chunkSize)*sentenceSnapRatio) {
				window = window[:lastPeriod+1]
				end = start + lastPeriod + 1
			}
		}

		chunks = append(chunks, strings.TrimSpace(string(window)))
		start = end - overlap
	}

	return chunks, nil
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
