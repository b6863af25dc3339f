package slug

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple word", in: "Toyota", want: "toyota"},
		{name: "keeps inner hyphen", in: "F-150", want: "f-150"},
		{name: "slash between words", in: "SUV / Crossover", want: "suv-crossover"},
		{name: "collapses whitespace", in: "  Land   Rover ", want: "land-rover"},
		{name: "collapses hyphens", in: "a -- b", want: "a-b"},
		{name: "strips punctuation", in: "O'Brien Motors, Inc.", want: "obrien-motors-inc"},
		{name: "keeps underscore", in: "AWD_4x4", want: "awd_4x4"},
		{name: "folds diacritics", in: "Citroën", want: "citroen"},
		{name: "only punctuation", in: "!!!", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "digits", in: "2022", want: "2022"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(42)
	inputs := []string{"Mercedes-Benz GLE 350", "  --weird--  ", "Model 3 / Long Range", "Ioniq 5"}
	for i := 0; i < 200; i++ {
		inputs = append(inputs, faker.Sentence(4), faker.Company(), faker.CarModel())
	}

	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestUnslugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "toyota", want: "Toyota"},
		{in: "land-rover", want: "Land Rover"},
		{in: "suv-crossover", want: "Suv Crossover"},
		{in: "f-150", want: "F 150"},
		{in: "bmw", want: "Bmw"},
		{in: "--a--b--", want: "A B"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Unslugify(tt.in), "input %q", tt.in)
	}
}

func TestUnslugifyPreservesSlug(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Toyota", "F-150", "SUV / Crossover", "Grand Cherokee", "CX-5"} {
		s := Slugify(in)
		assert.Equal(t, s, Slugify(Unslugify(s)), "input %q", in)
		assert.True(t, Equal(in, Unslugify(s)))
	}
}
