package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCategoryEvaluationPrompt creates the prompt for scoring one bidder's
// submission against a single document category. The response contract
// mirrors the CategoryScore shape the rest of the system consumes.
func (pb *PromptBuilder) BuildCategoryEvaluationPrompt(categoryName, categoryDescription, documentsText, ragContext string) string {
	return fmt.Sprintf(`You are an expert procurement evaluator assessing a bidder's submission for the "%s" document category of a construction tender.

CATEGORY DESCRIPTION:
%s

TENDER REFERENCE MATERIAL (rubrics, briefs, requirements):
%s

BIDDER'S SUBMITTED DOCUMENTS:
%s

Your task is to evaluate how well the submitted documents satisfy this category's requirements.

Return your response in the following JSON format:
{
  "score": <0-100, overall quality of the submission for this category>,
  "summary": "<3-5 sentence assessment of the submission>",
  "strengths": ["<specific strength>", ...],
  "weaknesses": ["<specific weakness>", ...],
  "risks": ["<specific risk to the project if this bidder is awarded>", ...]
}

Be objective and specific. Reference actual content from the documents to justify the score.`,
		categoryName, categoryDescription, ragContext, documentsText)
}

// BuildRetrievalQuery creates the query used to fetch tender reference
// context for a category evaluation.
func (pb *PromptBuilder) BuildRetrievalQuery(categoryName string) string {
	return fmt.Sprintf("Requirements, evaluation criteria and scoring guidance for %s documents", categoryName)
}

// FormatRAGContext renders retrieved chunks into a prompt section.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return "No relevant context found."
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
