package models

// Ticket maps to the `tickets` table.
type Ticket struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID      uint   `gorm:"column:user_id;index" json:"user_id"`
	Title       string `gorm:"column:title;size:300" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Status      string `gorm:"column:status;size:20;default:'open'" json:"status"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// AgencyRequest maps to the `agency_requests` table.
type AgencyRequest struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     uint   `gorm:"column:user_id;index" json:"user_id"`
	DailySales string `gorm:"column:daily_sales;size:300" json:"daily_sales"`
	Status     string `gorm:"column:status;size:20;default:'pending'" json:"status"`
}

func (AgencyRequest) TableName() string {
	return "agency_requests"
}
