package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FF0000", RGB{R: 1, G: 0, B: 0}},
		{"00ff00", RGB{R: 0, G: 1, B: 0}},
		{"#0000Ff", RGB{R: 0, G: 0, B: 1}},
		{"#808080", RGB{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255}},
		{"#FFF", FallbackGray},
		{"#GG0000", FallbackGray},
		{"#FF000000", FallbackGray},
		{"", FallbackGray},
		{"+F0000", FallbackGray},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, HexToRGB(tt.in))
		})
	}
}

func TestScheme_FallsBackToAnatomical(t *testing.T) {
	assert.Equal(t, Scheme("anatomical"), Scheme("no-such-scheme"))
	assert.Equal(t, "#4ECDC4", Scheme("hemisphere")["Right"])
	assert.Equal(t, []string{"anatomical", "functional", "hemisphere"}, SchemeNames())
}

func TestScheme_ReturnsCopy(t *testing.T) {
	s := Scheme("functional")
	s["motor"] = "#000000"
	assert.Equal(t, "#E74C3C", Scheme("functional")["motor"])
}

func TestParseLabelFile(t *testing.T) {
	text := "# labels\nFrontal_Sup_L 1 #FF6B6B\nPrecentral_L 2\nbad x #000000\nlonely\n\nFrontal_Sup_L2 1 #00FF00\n"

	labels := ParseLabelFile(text)

	assert.Len(t, labels, 2)
	assert.Equal(t, Label{Name: "Precentral_L", ID: 2, Color: DefaultLabelColor}, labels[2])
	assert.Equal(t, "Frontal_Sup_L2", labels[1].Name, "last write wins")

	table := LabelColorTable(labels)
	assert.Equal(t, RGB{R: 0, G: 1, B: 0}, table.ByID[1])
	assert.Equal(t, HexToRGB(DefaultLabelColor), table.ByName["Precentral_L"])
}
