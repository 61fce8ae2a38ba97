package churn

import (
	"testing"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/analysis/heuristic"
)

func mustHeuristic(t *testing.T) analysis.Analyzer {
	t.Helper()
	return heuristic.New()
}
