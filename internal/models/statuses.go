package models

type OrderStatus string
type PayoutStatus string
type ReviewStatus string
type ProductStatus string
type SellerType string
type PaymentMethodType string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"

	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusProcessed PayoutStatus = "processed"
	PayoutStatusFailed    PayoutStatus = "failed"

	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"

	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"

	SellerTypeStudent    SellerType = "student"
	SellerTypeIndividual SellerType = "individual"
	SellerTypeBusiness   SellerType = "business"

	PaymentMobileMoney PaymentMethodType = "mobile_money"
	PaymentBank        PaymentMethodType = "bank"
	PaymentPayPal      PaymentMethodType = "paypal"
)

// orderTransitions lists the statuses a seller may move an order to.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusReturned},
	OrderStatusDelivered:  {OrderStatusReturned},
}

// CanTransition reports whether a seller may move an order from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	default:
		return false
	}
}

func (t PaymentMethodType) Valid() bool {
	switch t {
	case PaymentMobileMoney, PaymentBank, PaymentPayPal:
		return true
	default:
		return false
	}
}

func (t SellerType) Valid() bool {
	switch t {
	case SellerTypeStudent, SellerTypeIndividual, SellerTypeBusiness:
		return true
	default:
		return false
	}
}
