package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SizeOption is one purchasable size of a variant with its base price.
type SizeOption struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// AddOn is a named priced extra a customer can attach to a variant.
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Variant struct {
	gorm.Model
	ProductID         uint                            `json:"productId"`
	Name              string                          `json:"name" binding:"required"`
	Sizes             datatypes.JSONSlice[SizeOption] `json:"sizes"`
	Designs           datatypes.JSONSlice[string]     `json:"designs"`
	Colors            datatypes.JSONSlice[string]     `json:"colors"`
	AdditionalOptions datatypes.JSONSlice[AddOn]      `json:"additionalOptions"`
}

type Product struct {
	gorm.Model
	Name        string                      `json:"name" binding:"required"`
	Description string                      `json:"description" binding:"required"`
	Category    datatypes.JSONSlice[string] `json:"category"`
	Type        datatypes.JSONSlice[string] `json:"type"`
	Images      datatypes.JSONSlice[string] `json:"img"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex" binding:"required"`
	Variants    []Variant                   `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
