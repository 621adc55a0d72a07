package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{"name and price", CreateInput{Name: strPtr("popsicle"), Price: floatPtr(1.45)}, nil},
		{"missing name", CreateInput{Price: floatPtr(1.45)}, ErrMissingFields},
		{"empty name", CreateInput{Name: strPtr(""), Price: floatPtr(1.45)}, ErrMissingFields},
		{"missing price", CreateInput{Name: strPtr("popsicle")}, ErrMissingFields},
		{"zero price", CreateInput{Name: strPtr("popsicle"), Price: floatPtr(0)}, ErrMissingFields},
		{"empty input", CreateInput{}, ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.in.Validate(), tt.wantErr)
		})
	}
}

func TestUpdateInputValidate(t *testing.T) {
	assert.NoError(t, UpdateInput{Name: strPtr("new popsicle")}.Validate())
	assert.NoError(t, UpdateInput{Price: floatPtr(2.45)}.Validate())
	assert.ErrorIs(t, UpdateInput{}.Validate(), ErrNoChanges)
	assert.ErrorIs(t, UpdateInput{Name: strPtr(""), Price: floatPtr(0)}.Validate(), ErrNoChanges)
}

func TestUpdateInputApply(t *testing.T) {
	orig := Item{Name: "popsicle", Price: 1.45}

	t.Run("name only keeps price", func(t *testing.T) {
		got := UpdateInput{Name: strPtr("new popsicle")}.Apply(orig)
		assert.Equal(t, Item{Name: "new popsicle", Price: 1.45}, got)
	})

	t.Run("price only keeps name", func(t *testing.T) {
		got := UpdateInput{Price: floatPtr(2.45)}.Apply(orig)
		assert.Equal(t, Item{Name: "popsicle", Price: 2.45}, got)
	})

	t.Run("falsy fields are ignored", func(t *testing.T) {
		got := UpdateInput{Name: strPtr(""), Price: floatPtr(2.45)}.Apply(orig)
		assert.Equal(t, Item{Name: "popsicle", Price: 2.45}, got)
	})
}

func TestIndexOf(t *testing.T) {
	items := []Item{{Name: "popsicle", Price: 1.45}, {Name: "cheerios", Price: 3.4}}

	assert.Equal(t, 0, IndexOf(items, "popsicle"))
	assert.Equal(t, 1, IndexOf(items, "cheerios"))
	assert.Equal(t, -1, IndexOf(items, "Popsicle"))
	assert.Equal(t, -1, IndexOf(nil, "popsicle"))
}
