package models

// DefaultImageExt is used when the source path carries no extension.
const DefaultImageExt = "jpg"

// ImageSource names where an attached image came from.
type ImageSource string

const (
	ImageFromGallery ImageSource = "gallery"
	ImageFromCamera  ImageSource = "camera"
)
