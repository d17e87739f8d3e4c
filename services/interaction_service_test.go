package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jayden7895/afyabora-app/services"
)

func TestInteractionCheck_KnownPair(t *testing.T) {
	svc := services.NewInteractionService()

	result := svc.Check([]string{"Aspirin 75mg", "Warfarin 5mg"})

	assert.True(t, result.HasInteraction)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "bleeding risk")
	assert.Equal(t, "Consult a pharmacist before proceeding.", result.Recommendation)
}

func TestInteractionCheck_CaseAndSubstringInsensitive(t *testing.T) {
	svc := services.NewInteractionService()

	result := svc.Check([]string{"SILDENAFIL citrate", "Glyceryl Trinitrate"})

	assert.True(t, result.HasInteraction)
	assert.Contains(t, result.Warnings[0], "fatal drop in blood pressure")
}

func TestInteractionCheck_NoInteraction(t *testing.T) {
	svc := services.NewInteractionService()

	result := svc.Check([]string{"Paracetamol", "Cetirizine"})

	assert.False(t, result.HasInteraction)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "No common interactions found.", result.Recommendation)
}

func TestInteractionCheck_SingleDrugNeverFlags(t *testing.T) {
	svc := services.NewInteractionService()

	result := svc.Check([]string{"Aspirin"})

	assert.False(t, result.HasInteraction)
}

func TestInteractionCheck_MultiplePairs(t *testing.T) {
	svc := services.NewInteractionService()

	result := svc.Check([]string{"Aspirin", "Warfarin", "Ibuprofen"})

	assert.True(t, result.HasInteraction)
	assert.Len(t, result.Warnings, 2)
}
