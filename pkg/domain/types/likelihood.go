package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Likelihood is the 1-5 likelihood rating of a risk
type Likelihood int

// Validate checks if the Likelihood is within the rating scale
func (l Likelihood) Validate() error {
	if l < 1 || l > 5 {
		return goerr.New("likelihood must be between 1 and 5", goerr.V("likelihood", int(l)))
	}
	return nil
}

// Int returns the numeric value of Likelihood
func (l Likelihood) Int() int {
	return int(l)
}
