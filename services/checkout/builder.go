package checkout

import (
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v74"
)

// BuildSessionParams translates a validated request into the parameters of a hosted checkout session.
// Prices and product texts come from the catalog only; client metadata can never override type or amount.
func BuildSessionParams(req ValidatedRequest, catalog Catalog, urls RedirectURLs) *stripe.CheckoutSessionParams {
	product := catalog.Ticket
	unitAmount := catalog.TicketPriceMinor
	amountText := formatMinor(catalog.TicketPriceMinor)
	if req.Kind == KindDonation {
		product = catalog.Donation
		unitAmount = toMinor(req.Amount)
		amountText = strconv.FormatFloat(req.Amount, 'f', -1, 64)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(catalog.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(product.Name),
						Description: stripe.String(product.Description),
					},
					UnitAmount: stripe.Int64(unitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(urls.Success),
		CancelURL:  stripe.String(urls.Cancel),
	}

	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}
	params.AddMetadata("type", string(req.Kind))
	params.AddMetadata("amount", amountText)

	return params
}

// toMinor converts major units into cents, rounding halves up.
func toMinor(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

func formatMinor(minor int64) string {
	return strconv.FormatFloat(float64(minor)/100, 'f', 2, 64)
}
