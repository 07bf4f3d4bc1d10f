package uploads

// PresignRequest asks for a one-time upload URL for a new work image.
type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignResponse carries the presigned URL and the storage key the
// client must reference when creating the post.
type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	MediaKey  string `json:"mediaKey"`
	ExpiresAt int64  `json:"expiresAt"`
}

const maxFilenameLength = 255

// Only raster image formats are accepted for design work media.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}
