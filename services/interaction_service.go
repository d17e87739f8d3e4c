package services

import (
	"strings"

	"github.com/Jayden7895/afyabora-app/models"
)

// interactionRule flags a known drug pair. Matching is substring-based on
// lowercased names, the same heuristic the storefront has always used.
type interactionRule struct {
	a, b    string
	warning string
}

var interactionRules = []interactionRule{
	{"aspirin", "warfarin", "Interaction: Aspirin increases bleeding risk when taken with Warfarin."},
	{"sildenafil", "nitrate", "Critical: Taking Sildenafil with Nitrates can cause a fatal drop in blood pressure."},
	{"ibuprofen", "aspirin", "Interaction: Ibuprofen may reduce the heart-protective effect of low-dose Aspirin."},
}

// InteractionService is the advisory drug-interaction checker. Its output
// never blocks or gates checkout.
type InteractionService struct{}

func NewInteractionService() *InteractionService {
	return &InteractionService{}
}

func (s *InteractionService) Check(medicines []string) models.InteractionResult {
	lower := make([]string, 0, len(medicines))
	for _, m := range medicines {
		lower = append(lower, strings.ToLower(m))
	}

	warnings := []string{}
	for _, rule := range interactionRules {
		if containsSubstring(lower, rule.a) && containsSubstring(lower, rule.b) {
			warnings = append(warnings, rule.warning)
		}
	}

	recommendation := "No common interactions found."
	if len(warnings) > 0 {
		recommendation = "Consult a pharmacist before proceeding."
	}
	return models.InteractionResult{
		HasInteraction: len(warnings) > 0,
		Warnings:       warnings,
		Recommendation: recommendation,
	}
}

func containsSubstring(values []string, sub string) bool {
	for _, v := range values {
		if strings.Contains(v, sub) {
			return true
		}
	}
	return false
}
