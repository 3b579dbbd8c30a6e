// Package insights aggregates analytical findings from arbitrary sources,
// gates them on confidence and relevance, caps retention per category, and
// produces ranked cross-source summaries through the completion provider.
package insights

import (
	"strings"
	"time"
)

// Type classifies an insight into one of the closed categories.
type Type string

const (
	TypeFinancial   Type = "financial"
	TypeSectoral    Type = "sectoral"
	TypeOperational Type = "operational"
	TypeRegulatory  Type = "regulatory"
	TypeStrategic   Type = "strategic"
	TypeRisk        Type = "risk"
)

// Confidence grades how much trust the source places in a finding.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Weight returns the scoring weight used for ranking and eviction.
func (c Confidence) Weight() int {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceHigh:
		return 3
	default:
		return 2
	}
}

// Rank orders confidences for admission comparison.
func (c Confidence) Rank() int { return c.Weight() }

// Source identifies where an insight came from.
type Source struct {
	Agent string `json:"agent"`
	Data  string `json:"data,omitempty"`
}

// Insight is a scored, typed analytical finding. Relevance is a 1-10
// integer; Score combines it with the confidence weight for ranking.
type Insight struct {
	ID          string            `json:"id"`
	Type        Type              `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Confidence  Confidence        `json:"confidence"`
	Relevance   int               `json:"relevance"`
	Source      Source            `json:"source"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Score is the ranking key: relevance weighted by confidence.
func (i Insight) Score() int {
	return i.Relevance * i.Confidence.Weight()
}

// ParseType maps free-text category wording onto the closed Type enum by
// keyword containment, defaulting to strategic.
func ParseType(s string) Type {
	lowered := strings.ToLower(s)
	switch {
	case strings.Contains(lowered, "financ"):
		return TypeFinancial
	case strings.Contains(lowered, "sector"), strings.Contains(lowered, "secteur"):
		return TypeSectoral
	case strings.Contains(lowered, "operation"), strings.Contains(lowered, "opération"):
		return TypeOperational
	case strings.Contains(lowered, "regul"), strings.Contains(lowered, "réglement"), strings.Contains(lowered, "reglement"):
		return TypeRegulatory
	case strings.Contains(lowered, "risk"), strings.Contains(lowered, "risque"):
		return TypeRisk
	default:
		return TypeStrategic
	}
}

// ParseConfidence maps free-text confidence wording onto the closed enum by
// keyword containment, defaulting to medium.
func ParseConfidence(s string) Confidence {
	lowered := strings.ToLower(s)
	switch {
	case strings.Contains(lowered, "high"), strings.Contains(lowered, "élevé"),
		strings.Contains(lowered, "haute"), strings.Contains(lowered, "forte"):
		return ConfidenceHigh
	case strings.Contains(lowered, "low"), strings.Contains(lowered, "faible"),
		strings.Contains(lowered, "basse"):
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}
