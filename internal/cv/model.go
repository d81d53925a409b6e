package cv

import "time"

// UserCV is the stored resume for a user. One row per user; re-uploading
// overwrites it.
type UserCV struct {
	ID          string
	UserID      string
	FileName    string
	ContentType string
	FileData    []byte
	TextPreview string
	UploadDate  time.Time
}
