package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceRangeAddPrice(t *testing.T) {
	r := NewPriceRange(100)
	assert.Equal(t, PriceVal(100), r.High)
	assert.Equal(t, PriceVal(100), r.Low)

	r.AddPrice(110)
	r.AddPrice(90)
	r.AddPrice(105)
	assert.Equal(t, PriceVal(110), r.High)
	assert.Equal(t, PriceVal(90), r.Low)
}

func TestPriceRangeInterval(t *testing.T) {
	r := PriceRange{High: 110, Low: 90}
	assert.Equal(t, PriceInterval(10), r.Interval())

	flat := NewPriceRange(50)
	assert.Equal(t, PriceInterval(0), flat.Interval())
}
