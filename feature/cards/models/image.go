package models

import "fmt"

// ImageVariant selects which card art an image sync handles.
type ImageVariant string

const (
	VariantFull    ImageVariant = "full"
	VariantCropped ImageVariant = "cropped"
)

// Column is the metadata column holding the variant's stored URL.
func (v ImageVariant) Column() string {
	if v == VariantCropped {
		return "image_cropped_url_s3"
	}
	return "image_url_s3"
}

// ObjectKey is the object-store key of a card's image.
func (v ImageVariant) ObjectKey(id int) string {
	if v == VariantCropped {
		return fmt.Sprintf("cards_cropped/%d.jpg", id)
	}
	return fmt.Sprintf("cards/%d.jpg", id)
}

// Prefix is the object-store prefix shared by all images of the variant.
func (v ImageVariant) Prefix() string {
	if v == VariantCropped {
		return "cards_cropped/"
	}
	return "cards/"
}

// Cropped reports whether the variant is the cropped art.
func (v ImageVariant) Cropped() bool {
	return v == VariantCropped
}

// AllImageVariants lists every variant.
var AllImageVariants = []ImageVariant{VariantFull, VariantCropped}

// CardImage is the minimal projection read by the image sync.
type CardImage struct {
	ID   int    `gorm:"column:id"`
	Name string `gorm:"column:name"`
}
