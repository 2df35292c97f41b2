package checkout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
)

// CheckoutForm is what the storefront page posts when javascript is not used.
type CheckoutForm struct {
	Type   string `form:"type"`
	Amount string `form:"amount"`
}

func NewFromRequest(r *http.Request) (CheckoutRequest, error) {
	err := r.ParseForm()
	if err != nil {
		return CheckoutRequest{}, myerrors.NewInvalidInputError(err)
	}
	return NewFromValues(r.PostForm)
}

func NewFromValues(values url.Values) (CheckoutRequest, error) {
	form := CheckoutForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return CheckoutRequest{}, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
	}

	req := CheckoutRequest{
		Type: form.Type,
	}
	if form.Amount != "" {
		req.Amount, err = json.Marshal(form.Amount)
		if err != nil {
			return CheckoutRequest{}, myerrors.NewInvalidInputError(fmt.Errorf("error encoding amount: %s", err))
		}
	}
	return req, nil
}
