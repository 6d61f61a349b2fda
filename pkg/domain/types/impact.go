package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Impact is the 1-5 impact rating of a risk
type Impact int

// Validate checks if the Impact is within the rating scale
func (i Impact) Validate() error {
	if i < 1 || i > 5 {
		return goerr.New("impact must be between 1 and 5", goerr.V("impact", int(i)))
	}
	return nil
}

// Int returns the numeric value of Impact
func (i Impact) Int() int {
	return int(i)
}
