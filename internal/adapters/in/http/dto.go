package http

import (
	"encoding/json"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductID string           `json:"productId" validate:"required"`
	Name      string           `json:"name"      validate:"required"`
	Quantity  int              `json:"quantity"  validate:"min=1"`
	Price     *decimal.Decimal `json:"price"     validate:"required"`
}

type ShippingAddressRequest struct {
	Street  string `json:"street"  validate:"required"`
	City    string `json:"city"    validate:"required"`
	State   string `json:"state"   validate:"required"`
	Country string `json:"country" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest      `json:"items"           validate:"required,min=1,dive"`
	ShippingAddress *ShippingAddressRequest `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                  `json:"paymentMethod"   validate:"required,oneof=CREDIT_CARD DEBIT_CARD PAYPAL BANK_TRANSFER"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PROCESSING SHIPPED DELIVERED CANCELLED"`
}

type ListOrdersParams struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Status string `query:"status"`
}

func (r CreateOrderRequest) itemInputs() []commands.OrderItemInput {
	inputs := make([]commands.OrderItemInput, len(r.Items))
	for i, item := range r.Items {
		inputs[i] = commands.OrderItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
		}
		if item.Price != nil {
			inputs[i].Price = *item.Price
		}
	}
	return inputs
}

func (r *ShippingAddressRequest) input() commands.ShippingAddressInput {
	if r == nil {
		return commands.ShippingAddressInput{}
	}
	return commands.ShippingAddressInput{
		Street:  r.Street,
		City:    r.City,
		State:   r.State,
		Country: r.Country,
		ZipCode: r.ZipCode,
	}
}

type OrderItemResponse struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
}

type ShippingAddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

type OrderResponse struct {
	ID              string                  `json:"id"`
	CustomerID      string                  `json:"customerId"`
	Items           []OrderItemResponse     `json:"items"`
	TotalAmount     json.Number             `json:"totalAmount"`
	Status          string                  `json:"status"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	PaymentStatus   string                  `json:"paymentStatus"`
	TrackingNumber  *string                 `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

type orderEnvelope struct {
	Order OrderResponse `json:"order"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type ListOrdersResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Pagination Pagination      `json:"pagination"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := o.Items()
	itemResponses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = OrderItemResponse{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			Price:     amount(item.Price()),
		}
	}

	address := o.ShippingAddress()
	return OrderResponse{
		ID:          o.ID().String(),
		CustomerID:  o.CustomerID(),
		Items:       itemResponses,
		TotalAmount: amount(o.TotalAmount()),
		Status:      o.Status().String(),
		ShippingAddress: ShippingAddressResponse{
			Street:  address.Street(),
			City:    address.City(),
			State:   address.State(),
			Country: address.Country(),
			ZipCode: address.ZipCode(),
		},
		PaymentMethod:  o.PaymentMethod().String(),
		PaymentStatus:  o.PaymentStatus().String(),
		TrackingNumber: o.TrackingNumber(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func toListResponse(page queries.ListOrdersResponse) ListOrdersResponse {
	orders := make([]OrderResponse, len(page.Orders))
	for i, o := range page.Orders {
		orders[i] = toOrderResponse(o)
	}
	return ListOrdersResponse{
		Orders: orders,
		Pagination: Pagination{
			Total: page.Total,
			Page:  page.Page,
			Limit: page.Limit,
			Pages: page.Pages(),
		},
	}
}

func amount(m kernel.Money) json.Number {
	return json.Number(m.String())
}
