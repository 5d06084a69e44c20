package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	chunker := NewTextChunker()

	t.Run("empty input yields no chunks", func(t *testing.T) {
		assert.Empty(t, chunker.ChunkText("", 1000, 200))
	})

	t.Run("short text stays in one chunk", func(t *testing.T) {
		chunks := chunker.ChunkText("A short rubric paragraph.", 1000, 200)
		require.Len(t, chunks, 1)
		assert.Equal(t, "A short rubric paragraph.", chunks[0])
	})

	t.Run("paragraphs combine until the size limit", func(t *testing.T) {
		text := strings.Repeat("Paragraph about structural steel.\n\n", 20)
		chunks := chunker.ChunkText(text, 200, 0)
		require.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 250)
		}
	})

	t.Run("oversized paragraph splits on sentences", func(t *testing.T) {
		para := strings.TrimSpace(strings.Repeat("The contractor shall provide a full method statement. ", 30))
		chunks := chunker.ChunkText(para, 300, 0)
		require.Greater(t, len(chunks), 1)
	})

	t.Run("overlap carries trailing text into the next chunk", func(t *testing.T) {
		text := strings.Repeat("Clause about liquidated damages.\n\n", 20)
		chunks := chunker.ChunkText(text, 200, 50)
		require.Greater(t, len(chunks), 1)

		tail := lastNChars(chunks[0], 50)
		assert.True(t, strings.HasPrefix(chunks[1], tail))
	})

	t.Run("blank paragraphs are skipped", func(t *testing.T) {
		chunks := chunker.ChunkText("first\n\n\n\n   \n\nsecond", 1000, 0)
		require.Len(t, chunks, 1)
		assert.Contains(t, chunks[0], "first")
		assert.Contains(t, chunks[0], "second")
	})
}

func TestSplitIntoSentences(t *testing.T) {
	sentences := splitIntoSentences("One. Two! Three? Four")
	require.Len(t, sentences, 4)
	assert.Equal(t, "One.", sentences[0])
	assert.Equal(t, " Four", sentences[3])
}
