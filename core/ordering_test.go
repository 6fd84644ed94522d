package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		val  string
		want []Ordering
	}{
		{val: "", want: nil},
		{val: " , -", want: nil},
		{val: "name", want: []Ordering{{Field: "name", Ascending: true}}},
		{val: "-id", want: []Ordering{{Field: "id"}}},
		{
			val:  " distribution_type , -id,mark_type",
			want: []Ordering{{Field: "distribution_type", Ascending: true}, {Field: "id"}, {Field: "mark_type", Ascending: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrdering(tt.val))
		})
	}
}

func TestOrdering_String(t *testing.T) {
	assert.Equal(t, "name ASC", Ordering{Field: "name", Ascending: true}.String())
	assert.Equal(t, "id DESC", Ordering{Field: "id"}.String())
}
