package forms

import (
	"context"
	"errors"
	"testing"

	"negromart_seller/internal/api"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services"
	"negromart_seller/internal/session"
	"negromart_seller/internal/testserver"
	"negromart_seller/internal/validator"
	"negromart_seller/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() ProductForm {
	return ProductForm{
		Name:       "Kente tote",
		CategoryID: 1,
		Price:      85,
		Stock:      4,
		Variants:   []models.Variant{{Name: "Gold", Price: 85, Stock: 4}},
		DeliveryOptions: []models.DeliveryOptionAssignment{
			{DeliveryOptionID: 1, Default: true},
		},
		Images: []models.FileSlot{models.NewFileSlot("tote.jpg", "image/jpeg", []byte("jpeg"))},
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *validator.ValidationError
	require.True(t, errors.As(err, &vErr), "expected a validation error, got %v", err)
	return vErr.Errors
}

func TestProductForm_DeliveryDefaultInvariant(t *testing.T) {
	v := validator.New()

	form := validProduct()
	form.DeliveryOptions = []models.DeliveryOptionAssignment{
		{DeliveryOptionID: 1, Default: true},
		{DeliveryOptionID: 2, Default: true},
	}
	assert.Equal(t, DeliveryDefaultMessage, fieldErrors(t, form.Validate(v))["delivery_options"])

	form.DeliveryOptions = []models.DeliveryOptionAssignment{{DeliveryOptionID: 1, Default: true}}
	assert.NoError(t, form.Validate(v))

	form.DeliveryOptions = []models.DeliveryOptionAssignment{{DeliveryOptionID: 1}, {DeliveryOptionID: 2}}
	assert.Equal(t, "Exactly one delivery option must be marked as default", fieldErrors(t, form.Validate(v))["delivery_options"])

	form.SetDefaultDelivery(2)
	assert.NoError(t, form.Validate(v))
	assert.False(t, form.DeliveryOptions[0].Default)
	assert.True(t, form.DeliveryOptions[1].Default)
}

func TestProductForm_FieldRules(t *testing.T) {
	v := validator.New()

	form := validProduct()
	form.Name = ""
	form.Price = 0
	form.Stock = -1
	form.Variants = []models.Variant{{Price: 10}}
	form.Images = []models.FileSlot{{Name: "lost.jpg"}}

	errs := fieldErrors(t, form.Validate(v))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "stock")
	assert.Contains(t, errs, "variants[0].name")
	assert.Contains(t, errs, "images.0")

	form = validProduct()
	form.Images = nil
	assert.Contains(t, fieldErrors(t, form.Validate(v)), "images")

	form.ExistingImages = 2
	assert.NoError(t, form.Validate(v))
}

func TestProductForm_Payload(t *testing.T) {
	form := validProduct()
	payload, err := form.Payload()
	require.NoError(t, err)

	price, _ := payload.Value("price")
	assert.Equal(t, "85", price)
	options, _ := payload.Value("delivery_options")
	assert.JSONEq(t, `[{"delivery_option_id":1,"default":true}]`, options)
	variants, _ := payload.Value("variants")
	assert.JSONEq(t, `[{"name":"Gold","price":85,"stock":4}]`, variants)
	assert.Equal(t, []string{"images=tote.jpg"}, payload.FileNames())
}

func newServices(t *testing.T) (*testserver.Server, *services.ServiceContainer) {
	t.Helper()
	srv := testserver.New(t)
	sess := session.New(nil)
	access, refresh := srv.IssueTokens()
	require.NoError(t, sess.SetTokens(context.Background(), access, refresh))
	return srv, services.NewServiceContainer(api.New(srv.APIBase(), sess), validator.New())
}

func TestProductForm_SubmitCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	srv, svc := newServices(t)
	v := validator.New()

	form := validProduct()
	created, err := form.Submit(ctx, v, svc.ProductService, 0)
	require.NoError(t, err)
	assert.Equal(t, "Kente tote", created.Name)
	require.Len(t, created.Images, 1)

	edit := ProductFormFrom(*created)
	edit.Price = 90
	edit.DeliveryOptions = append(edit.DeliveryOptions, models.DeliveryOptionAssignment{DeliveryOptionID: 2})
	updated, err := edit.Submit(ctx, v, svc.ProductService, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, updated.Price)

	stored, ok := srv.Product(created.ID)
	require.True(t, ok)
	assert.Len(t, stored.DeliveryOptions, 2)
	assert.Len(t, stored.Images, 1, "existing images kept")
}

func TestPaymentMethodForm_SwitchingMethodClearsFields(t *testing.T) {
	v := validator.New()
	form := PaymentMethodFormFrom(nil)
	form.MobileNumber = "0241234567"
	form.MobileProvider = "MTN"
	require.NoError(t, form.Validate(v))

	form.SetMethod(models.PaymentBank)
	assert.Empty(t, form.MobileNumber)

	errs := fieldErrors(t, form.Validate(v))
	assert.Len(t, errs, 3)
}

func TestPaymentMethodForm_SubmitNormalizesBank(t *testing.T) {
	ctx := context.Background()
	_, svc := newServices(t)
	v := validator.New()

	_, err := svc.PaymentService.Get(ctx)
	assert.True(t, apperrors.Is(err, apperrors.ErrPaymentMethodMissing))

	form := PaymentMethodFormFrom(nil)
	form.SetMethod(models.PaymentBank)
	form.BankName = "gcb"
	form.AccountHolder = "Ama Boateng"
	form.AccountNumber = "1234567890"

	saved, err := form.Submit(ctx, v, svc.PaymentService)
	require.NoError(t, err)
	assert.Equal(t, "GCB Bank", saved.BankName)

	form.BankName = "Bank of Nowhere"
	_, err = form.Submit(ctx, v, svc.PaymentService)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Unknown bank", appErr.FieldErrors()["bank_name"])
}

func TestOpeningHoursForm_Validate(t *testing.T) {
	v := validator.New()
	form := OpeningHoursForm{Rows: []models.OpeningHours{
		{Day: 0, OpenTime: "09:00", CloseTime: "08:00"},
		{Day: 1, OpenTime: "9am", CloseTime: "17:00"},
		{Day: 2},
		{Day: 6, IsClosed: true},
	}}

	errs := fieldErrors(t, form.Validate(v))
	assert.Equal(t, "Closing time must be after opening time", errs["monday.close_time"])
	assert.Contains(t, errs, "tuesday.open_time")
	assert.Contains(t, errs, "wednesday.open_time")
	assert.Contains(t, errs, "wednesday.close_time")
	assert.NotContains(t, errs, "sunday.open_time")
}

func TestOpeningHoursForm_Save(t *testing.T) {
	ctx := context.Background()
	_, svc := newServices(t)
	v := validator.New()

	rows, err := svc.OpeningHoursService.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows[0].CloseTime = "18:00"
	form := OpeningHoursForm{Rows: append(rows, models.OpeningHours{Day: 5, OpenTime: "10:00", CloseTime: "14:00"})}

	saved, err := form.Save(ctx, v, svc.OpeningHoursService)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "18:00", saved[0].CloseTime)
	assert.NotZero(t, form.Rows[1].ID)

	rows, err = svc.OpeningHoursService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, svc.OpeningHoursService.Delete(ctx, form.Rows[1].ID))
	rows, err = svc.OpeningHoursService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
