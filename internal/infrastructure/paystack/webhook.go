package paystack

import (
	"github.com/tidwall/gjson"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
)

// ParseEvent reads the fields the service acts on from a verified webhook body.
// Amounts arrive in kobo and are returned in whole naira.
func ParseEvent(body []byte) (*entities.GatewayEvent, error) {
	if !gjson.ValidBytes(body) {
		return nil, domainerrors.BadRequest("Invalid webhook payload")
	}
	doc := gjson.ParseBytes(body)
	return &entities.GatewayEvent{
		Event:           doc.Get("event").String(),
		Reference:       doc.Get("data.reference").String(),
		Amount:          doc.Get("data.amount").Int() / 100,
		CustomerEmail:   doc.Get("data.customer.email").String(),
		GatewayResponse: doc.Get("data.gateway_response").String(),
	}, nil
}
