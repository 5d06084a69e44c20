package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits tender reference material into overlapping chunks for
// embedding. Paragraph boundaries are preferred; oversized paragraphs fall
// back to sentence splits.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	appendPiece := func(piece string) {
		if current.Len()+len(piece)+1 > maxChunkSize {
			flush()
			if overlap > 0 && len(chunks) > 0 {
				current.WriteString(lastNChars(chunks[len(chunks)-1], overlap))
				current.WriteString(" ")
			}
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(piece)
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) > maxChunkSize {
			for _, sentence := range splitIntoSentences(para) {
				sentence = strings.TrimSpace(sentence)
				if sentence != "" {
					appendPiece(sentence)
				}
			}
			continue
		}

		appendPiece(para)
	}

	flush()
	return chunks
}

func splitIntoSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	return sentences
}

func lastNChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
