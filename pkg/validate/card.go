package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// IsCardNumber reports whether s is a Luhn-valid card number. Spaces are
// tolerated, everything else must be digits.
func IsCardNumber(s string) bool {
	err := goluhn.Validate(strings.ReplaceAll(s, " ", ""))
	return err == nil
}
