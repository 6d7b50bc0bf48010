package constants

// Uploaded images
const (
	UploadMaxBytes      = 10 << 20 // 10 MiB per image
	UploadContentPrefix = "image/"
)
