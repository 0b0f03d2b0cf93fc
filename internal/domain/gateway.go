package domain

// GatewayStatus is the closed set of intent statuses the gateway may report.
type GatewayStatus string

const (
	GatewaySucceeded             GatewayStatus = "succeeded"
	GatewayRequiresAction        GatewayStatus = "requires_action"
	GatewayRequiresPaymentMethod GatewayStatus = "requires_payment_method"
	GatewayRequiresConfirmation  GatewayStatus = "requires_confirmation"
	GatewayProcessing            GatewayStatus = "processing"
	GatewayRequiresCapture       GatewayStatus = "requires_capture"
	GatewayCanceled              GatewayStatus = "canceled"
)

// ParseGatewayStatus rejects anything outside the known set.
func ParseGatewayStatus(s string) (GatewayStatus, error) {
	switch GatewayStatus(s) {
	case GatewaySucceeded,
		GatewayRequiresAction,
		GatewayRequiresPaymentMethod,
		GatewayRequiresConfirmation,
		GatewayProcessing,
		GatewayRequiresCapture,
		GatewayCanceled:
		return GatewayStatus(s), nil
	}
	return "", NewUnknownGatewayStatusError(s)
}
