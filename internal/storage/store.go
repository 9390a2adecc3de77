package storage

// FileStore lưu ảnh sản phẩm chụp từ điện thoại của chủ quán.
type FileStore interface {
	UploadFile(file []byte, filename string, folder string) (string, error)
	DeleteFile(publicID string, folder string) error
}
