package extract

import "google.golang.org/genai"

// statementSchema constrains the model response for the statement flow.
// The field semantics mirror internal/statement.
func statementSchema() *genai.Schema {
	balance := func(desc string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeNumber,
			Nullable:    genai.Ptr(true),
			Description: desc,
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"metadata": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"issuer": {
						Type:        genai.TypeString,
						Description: "Issuing bank name (e.g. Interbank, Scotiabank, BCP, Falabella, BBVA)",
					},
					"card_network": {
						Type: genai.TypeString,
						Enum: []string{"Visa", "Mastercard"},
					},
					"closing_date": {
						Type:        genai.TypeString,
						Description: "Statement closing date in YYYY-MM-DD format",
					},
					"opening_balance_pen": balance("Previous/opening balance in soles (PEN)"),
					"closing_balance_pen": balance("Current/closing balance in soles (PEN)"),
					"opening_balance_usd": balance("Previous/opening balance in dollars (USD)"),
					"closing_balance_usd": balance("Current/closing balance in dollars (USD)"),
					"is_statement": {
						Type:        genai.TypeBoolean,
						Description: "True for a real credit-card statement, false for ads or other documents",
					},
				},
				Required: []string{"issuer", "card_network", "closing_date", "is_statement"},
			},
			"records": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": {
							Type:        genai.TypeString,
							Description: "CONSUMPTION date of the movement in YYYY-MM-DD format",
						},
						"description": {
							Type:        genai.TypeString,
							Description: "Merchant or movement description, verbatim",
						},
						"amount": {
							Type:        genai.TypeNumber,
							Description: "Positive for charges, negative for payments/credits",
						},
						"currency": {
							Type: genai.TypeString,
							Enum: []string{"PEN", "USD"},
						},
						"category": {
							Type: genai.TypeString,
							Enum: []string{"consumption", "payment", "interest", "fee", "insurance", "adjustment", "other"},
						},
					},
					Required: []string{"date", "description", "amount", "currency", "category"},
				},
			},
		},
		Required: []string{"metadata", "records"},
	}
}

// tripSchema constrains the model response for the taxi flow.
func tripSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"provider": {
				Type:        genai.TypeString,
				Description: "Ride company: Uber, Cabify, Beat, InDriver, DiDi, etc.",
			},
			"date": {
				Type:        genai.TypeString,
				Description: "Trip date in YYYY-MM-DD format",
			},
			"time": {
				Type:        genai.TypeString,
				Description: "Trip time in HH:MM 24-hour format",
			},
			"origin": {
				Type:        genai.TypeString,
				Description: "Pickup address or place",
			},
			"destination": {
				Type:        genai.TypeString,
				Description: "Drop-off address or place",
			},
			"currency": {
				Type: genai.TypeString,
				Enum: []string{"PEN", "USD"},
			},
			"price": {
				Type:        genai.TypeNumber,
				Description: "Total charged for the trip",
			},
			"is_trip": {
				Type:        genai.TypeBoolean,
				Description: "True for a receipt of a completed trip, false for ads or other emails",
			},
		},
		Required: []string{"provider", "date", "time", "origin", "destination", "currency", "price", "is_trip"},
	}
}
