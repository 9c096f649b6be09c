// Package orderrepo maps the Order aggregate onto the orders and order_items
// tables and implements the order repository with GORM.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      string          `gorm:"type:varchar(255);not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric;not null"`
	Status          string          `gorm:"type:varchar(16);not null"`
	ShippingAddress AddressDTO      `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string          `gorm:"type:varchar(32);not null"`
	PaymentStatus   string          `gorm:"type:varchar(16);not null"`
	TrackingNumber  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded into orders with a shipping_ prefix.
type AddressDTO struct {
	Street  string `gorm:"not null"`
	City    string `gorm:"not null"`
	State   string `gorm:"not null"`
	Country string `gorm:"not null"`
	ZipCode string `gorm:"not null"`
}

// OrderItemDTO is one row of order_items. Position keeps the item order.
type OrderItemDTO struct {
	ID        uint64          `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID string          `gorm:"not null"`
	Name      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	address := o.ShippingAddress()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  i,
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			Price:     item.Price().Decimal(),
		})
	}

	return OrderDTO{
		ID:          id,
		CustomerID:  o.CustomerID(),
		TotalAmount: o.TotalAmount().Decimal(),
		Status:      o.Status().String(),
		ShippingAddress: AddressDTO{
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
		Items:          items,
	}
}

// toDomain rebuilds the aggregate through order.RestoreOrder. The stored
// total_amount is not read back: the aggregate derives it from the items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Name, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	address, err := kernel.NewAddress(
		dto.ShippingAddress.Street,
		dto.ShippingAddress.City,
		dto.ShippingAddress.State,
		dto.ShippingAddress.Country,
		dto.ShippingAddress.ZipCode,
	)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		CustomerID:      dto.CustomerID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		Status:          status,
		PaymentStatus:   paymentStatus,
		TrackingNumber:  dto.TrackingNumber,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}
