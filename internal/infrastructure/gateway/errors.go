package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/stripe/stripe-go/v78"
)

func asStripeError(err error) (*stripe.Error, bool) {
	var stripeErr *stripe.Error
	ok := errors.As(err, &stripeErr)
	return stripeErr, ok
}

// wrapError converts SDK errors into application.GatewayError. Transport failures get status 0.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	stripeErr, ok := asStripeError(err)
	if !ok {
		return &application.GatewayError{
			Code:       "network_error",
			Message:    err.Error(),
			StatusCode: 0,
		}
	}

	code := string(stripeErr.Code)
	if code == "" {
		code = string(stripeErr.Type)
	}
	msg := stripeErr.Msg
	if msg == "" {
		msg = fmt.Sprintf("stripe request failed with status %d", stripeErr.HTTPStatusCode)
	}
	return &application.GatewayError{
		Code:       code,
		Message:    msg,
		StatusCode: stripeErr.HTTPStatusCode,
	}
}
