package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorTag_Tone(t *testing.T) {
	tests := []struct {
		tag  ColorTag
		want Tone
	}{
		{ColorGreen, ToneGreen},
		{ColorRed, ToneRed},
		{ColorYellow, ToneYellow},
		{"", ToneYellow},
		{"blue", ToneYellow},
		{"GREEN", ToneYellow},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tag.Tone())
		})
	}
}

func TestColorTag_Known(t *testing.T) {
	assert.True(t, ColorGreen.Known())
	assert.True(t, ColorRed.Known())
	assert.True(t, ColorYellow.Known())
	assert.False(t, ColorTag("purple").Known())
}

func TestClassifyValuation(t *testing.T) {
	tests := []struct {
		status string
		want   Valuation
	}{
		{"İskontolu (Model Altı)", ValuationDiscounted},
		{"ISKONTOLU", ValuationDiscounted},
		{"UCUZ", ValuationDiscounted},
		{"Discounted (below model)", ValuationDiscounted},
		{"Primli (Model Üstü)", ValuationPremium},
		{"PRIMLI", ValuationPremium},
		{"Pahalı", ValuationPremium},
		{"Premium", ValuationPremium},
		{"Nötr", ValuationNeutral},
		{"", ValuationNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyValuation(tt.status))
		})
	}
}

func TestValuation_Tone(t *testing.T) {
	assert.Equal(t, ToneGreen, ValuationDiscounted.Tone())
	assert.Equal(t, ToneRed, ValuationPremium.Tone())
	assert.Equal(t, ToneNeutral, ValuationNeutral.Tone())
	assert.Equal(t, "premium", ValuationPremium.String())
}

func TestDirection(t *testing.T) {
	tests := []struct {
		change string
		want   string
	}{
		{"0.00", GlyphUp},
		{"-0.00", GlyphUp},
		{"2.51", GlyphUp},
		{"+1.00", GlyphUp},
		{"-0.01", GlyphDown},
		{"-7.8", GlyphDown},
		{" -3 ", GlyphDown},
		{"", GlyphUp},
		{"-n/a", GlyphDown},
	}

	for _, tt := range tests {
		t.Run(tt.change, func(t *testing.T) {
			assert.Equal(t, tt.want, Direction(tt.change))
		})
	}
}
