package checkout

import (
	stdErrors "errors"
	"fmt"
)

// Stage names one step of the linear checkout flow.
type Stage string

const (
	StageCart         Stage = "cart"
	StageAddress      Stage = "address"
	StagePayment      Stage = "payment"
	StageConfirmation Stage = "confirmation"
)

// Redirect signals that the caller entered a stage it cannot be in, such as
// an empty cart or a missing address when reaching payment. It travels as an
// error so it can cross service boundaries, but it is a silent no-op recovery,
// not a failure: controllers translate it into a redirect payload, never an
// error message.
type Redirect struct {
	To Stage
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect to %s", r.To)
}

// AsRedirect extracts a Redirect from the error chain, or nil.
func AsRedirect(err error) *Redirect {
	if err == nil {
		return nil
	}
	var redirect *Redirect
	if stdErrors.As(err, &redirect) {
		return redirect
	}
	return nil
}
