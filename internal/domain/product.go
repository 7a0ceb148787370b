package domain

import "time"

type Product struct {
	ID              string    `json:"_id" gorm:"primaryKey;size:24"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text;not null"`
	OriginalPrice   int64     `json:"originalPrice" gorm:"not null"`
	DiscountedPrice int64     `json:"discountedPrice" gorm:"not null"`
	DriveLink       string    `json:"driveLink" gorm:"not null"`
	ImageURL        string    `json:"imageUrl" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
