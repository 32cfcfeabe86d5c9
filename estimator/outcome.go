// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/funcge"
)

// Outcome is the response type of a model.
type Outcome int

const (
	// Continuous is a real-valued response, one column.
	Continuous Outcome = iota + 1
	// Binary is a 0/1 response, one column.
	Binary
	// Survival is a (time, status) response, two columns; status 1 = event.
	Survival
)

var outcomeNames = map[Outcome]string{
	Continuous: "Continuous",
	Binary:     "Binary",
	Survival:   "Survival",
}

// String returns the canonical outcome name.
func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}

	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Columns is the number of response columns the outcome expects.
func (o Outcome) Columns() int {
	if o == Survival {
		return 2
	}

	return 1
}

// ParseOutcome maps a case-insensitive name to an Outcome.
func ParseOutcome(name string) (Outcome, error) {
	for o, s := range outcomeNames {
		if strings.EqualFold(s, strings.TrimSpace(name)) {
			return o, nil
		}
	}

	return 0, fmt.Errorf("%s: unknown outcome %q: %w", opParseOutcome, name, funcge.ErrInvalidInput)
}

func (o Outcome) valid() bool {
	_, ok := outcomeNames[o]

	return ok
}
