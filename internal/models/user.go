package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User maps to the `users` table.
// NumID is the Telegram account id; the surrogate primary key is kept
// because tickets and agency requests reference it.
type User struct {
	ID                     uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NumID                  int64           `gorm:"column:num_id;uniqueIndex" json:"num_id"`
	Username               string          `gorm:"column:username;size:300" json:"username"`
	FirstName              string          `gorm:"column:first_name;size:300" json:"first_name"`
	LastName               string          `gorm:"column:last_name;size:300" json:"last_name"`
	ProfileURL             string          `gorm:"column:profile_url;size:500" json:"profile_url"`
	PreferredLanguage      string          `gorm:"column:preferred_language;size:10" json:"preferred_language"`
	IsPremium              bool            `gorm:"column:is_premium;default:false" json:"is_premium"`
	IsBot                  bool            `gorm:"column:is_bot;default:false" json:"is_bot"`
	IsAdmin                bool            `gorm:"column:is_admin;default:false" json:"is_admin"`
	JoinDate               time.Time       `gorm:"column:join_date;autoCreateTime" json:"join_date"`
	UsedCredit             decimal.Decimal `gorm:"column:used_credit;type:decimal(20,4);default:0" json:"used_credit"`
	RemainingCredit        decimal.Decimal `gorm:"column:remaining_credit;type:decimal(20,4);default:0" json:"remaining_credit"`
	ReferralCredit         decimal.Decimal `gorm:"column:referral_credit;type:decimal(20,4);default:0" json:"referral_credit"`
	SubTransactionEarnings decimal.Decimal `gorm:"column:sub_transaction_earnings;type:decimal(20,4);default:0" json:"sub_transaction_earnings"`
	// Both cooldown columns stay NULL until the first claim/ticket;
	// MySQL DATETIME cannot hold the Go zero time.
	LastChanceTime         *time.Time      `gorm:"column:last_chance_time" json:"last_chance_time,omitempty"`
	LastTicketTime         *time.Time      `gorm:"column:last_ticket_time" json:"last_ticket_time,omitempty"`
	ReferrerID             *int64          `gorm:"column:referrer_id" json:"referrer_id,omitempty"`
}

func (User) TableName() string {
	return "users"
}
