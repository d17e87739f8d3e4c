package models

type Product struct {
	ID                   string `gorm:"primaryKey" json:"id"`
	Name                 string `gorm:"not null;index" json:"name"`
	Category             string `gorm:"type:varchar(40)" json:"category"`
	Price                int    `gorm:"not null" json:"price"`
	Description          string `json:"description"`
	ImageURL             string `json:"imageUrl"`
	Stock                int    `json:"stock"`
	RequiresPrescription bool   `json:"requiresPrescription"`
	Dosage               string `json:"dosage,omitempty"`
	SideEffects          string `json:"sideEffects,omitempty"`
	Manufacturer         string `json:"manufacturer,omitempty"`
}
