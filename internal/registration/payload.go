package registration

import (
	"strconv"

	"negromart_seller/internal/api"
	"negromart_seller/internal/models"
)

// Payload renders the draft as the multipart body of POST /vendor/register/.
// Nested fields use dotted names; only loaded files are attached.
func (d *Draft) Payload() *api.Multipart {
	form := api.NewMultipart().
		Field("first_name", d.FirstName).
		Field("last_name", d.LastName).
		Field("business_name", d.BusinessName).
		Field("email", d.Email).
		Field("contact", d.Contact).
		Field("seller_type", string(d.SellerType)).
		Field("about.address", d.About.Address).
		Field("about.website", d.About.Website).
		Field("about.facebook", d.About.Facebook).
		Field("about.instagram", d.About.Instagram).
		Field("about.twitter", d.About.Twitter).
		Field("about.bio", d.About.Bio)

	if d.About.Latitude != nil {
		form.Field("about.latitude", strconv.FormatFloat(*d.About.Latitude, 'f', -1, 64))
	}
	if d.About.Longitude != nil {
		form.Field("about.longitude", strconv.FormatFloat(*d.About.Longitude, 'f', -1, 64))
	}

	pm := d.PaymentMethod
	form.Field("payment_method.method", string(pm.Method))
	switch pm.Method {
	case models.PaymentMobileMoney:
		form.Field("payment_method.mobile_number", pm.MobileNumber).
			Field("payment_method.mobile_provider", pm.MobileProvider)
	case models.PaymentBank:
		form.Field("payment_method.bank_name", pm.BankName).
			Field("payment_method.account_holder", pm.AccountHolder).
			Field("payment_method.account_number", pm.AccountNumber)
	case models.PaymentPayPal:
		form.Field("payment_method.paypal_account", pm.PayPalAccount)
	}

	for _, name := range AllSlots {
		// the id slot the seller type does not use is left out
		if (name == SlotStudentID || name == SlotGovernmentID) && name != d.IDSlot() {
			continue
		}
		slot := d.Slot(name)
		if slot.Loaded() {
			form.File(name, slot.Name, slot.ContentType, slot.Data)
		}
	}
	return form
}
