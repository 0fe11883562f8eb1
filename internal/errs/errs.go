package errs

import "fmt"

type Code string

const (
	MissingLocation   Code = "MISSING_LOCATION"
	InvalidPrice      Code = "INVALID_PRICE"
	InvalidVAT        Code = "INVALID_VAT"
	JSONNeedsNoPrompt Code = "JSON_NEEDS_NO_PROMPT"
)

var messages = map[Code]string{
	MissingLocation: `Missing location: both a postcode and an area are required

Usage:
  skipsel %[1]s --postcode NR32 --area Lowestoft

Reason:
  skip availability is listed per postcode and area; got postcode=%[2]q area=%[3]q.`,

	InvalidPrice: `Invalid price %[1]q: expected a non-negative number

Usage:
  skipsel price 278 20`,

	InvalidVAT: `Invalid VAT %[1]q: expected a percentage between 0 and 100

Usage:
  skipsel price 278 20`,

	JSONNeedsNoPrompt: `Invalid flag combination: --json requires --skip

Usage:
  - Pick a skip without the interactive page and print it as JSON:
      skipsel select --skip 17933 --json
  - Pick a skip interactively:
      skipsel select`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
