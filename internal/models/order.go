package models

import "time"

// Order statuses as reported by the SMM panel.
const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "In Progress"
	OrderStatusCompleted  = "Completed"
	OrderStatusCanceled   = "Canceled"
	OrderStatusUnknown    = "Unknown"
)

// Order maps to the `orders` table. OrderID is issued by the SMM panel;
// a row exists only after the panel confirmed placement.
type Order struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;index" json:"user_id"`
	OrderID   int64     `gorm:"column:order_id;uniqueIndex" json:"order_id"`
	ServiceID string    `gorm:"column:service_id;size:100" json:"service_id"`
	Link      string    `gorm:"column:link;size:1000" json:"link"`
	Quantity  int       `gorm:"column:quantity" json:"quantity"`
	Status    string    `gorm:"column:status;size:50;default:'Pending'" json:"status"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

func (Order) TableName() string {
	return "orders"
}
