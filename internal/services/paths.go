package services

import "strconv"

// REST paths, relative to the /api/v1 base URL.
const (
	pathLogin     = "/auth/jwt/create/"
	pathVerify    = "/auth/jwt/verify/"
	pathLogout    = "/auth/logout/"
	pathOTPVerify = "/auth/otp/verify/"
	pathOTPResend = "/auth/otp/resend/"

	pathNotifications = "/notification/"
	pathWSToken       = "/notification/ws-token/"

	pathAnalytics     = "/vendor/analytics/"
	pathOrders        = "/vendor/orders/"
	pathProducts      = "/vendor/products/"
	pathRelatedData   = "/vendor/products/related-data/"
	pathPaymentMethod = "/vendor/payment-method/"
	pathValidateBank  = "/vendor/payment-method/validate-bank/"
	pathPayouts       = "/vendor/payouts/"
	pathReviews       = "/vendor/reviews/"
	pathOpeningHours  = "/vendor/opening-hours/"
	pathRegister      = "/vendor/register/"
)

func itemPath(collection string, id int64) string {
	return collection + strconv.FormatInt(id, 10) + "/"
}
