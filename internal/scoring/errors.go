package scoring

import "fmt"

// ConfigurationError reports a weight configuration that cannot be used for
// scoring, either because the total is not 100 or because the scoring matrix
// references a category the tender does not have.
type ConfigurationError struct {
	Total  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid weight configuration: %s", e.Reason)
	}
	return fmt.Sprintf("total weight must equal 100%%, got %d%%", e.Total)
}

// AggregationError is returned when the categories that have scores carry
// zero total weight, leaving the weighted mean undefined. The aggregator
// refuses to produce a number rather than returning 0 or NaN.
type AggregationError struct {
	BidderName string
}

func (e *AggregationError) Error() string {
	if e.BidderName != "" {
		return fmt.Sprintf("cannot aggregate scores for %s: no weighted categories evaluated", e.BidderName)
	}
	return "cannot aggregate: no weighted categories evaluated"
}

// MissingScoreError reports a category that has no score for a bidder that
// was claimed to be fully evaluated.
type MissingScoreError struct {
	BidderID   string
	CategoryID string
}

func (e *MissingScoreError) Error() string {
	return fmt.Sprintf("bidder %s has no score for category %s", e.BidderID, e.CategoryID)
}

// ExternalEvaluationError wraps a failed or malformed response from the
// external AI evaluator. Retries, if any, belong to the integration layer.
type ExternalEvaluationError struct {
	Stage string
	Err   error
}

func (e *ExternalEvaluationError) Error() string {
	return fmt.Sprintf("external evaluation failed during %s: %v", e.Stage, e.Err)
}

func (e *ExternalEvaluationError) Unwrap() error {
	return e.Err
}
