package models

type ImageType string

const (
	ProductImage ImageType = "product"
	ThemeHeader  ImageType = "theme-header"
)

const (
	ProductImagesBucket = "product-images"
	ThemeHeadersBucket  = "theme-headers"
)

type Image struct {
	Bucket string `json:"-" db:"bucket"`
	Path   string `json:"-" db:"path"`
}

func IsValidImageType(imageType string) bool {
	return imageType == string(ProductImage) || imageType == string(ThemeHeader)
}
