package dbmodels

type Attachment struct {
	BaseModel
	RequestID   string `gorm:"type:varchar(36);index"`
	FileName    string `gorm:"type:varchar(255)"`
	ContentType string `gorm:"type:varchar(100)"`
	Size        int64
	StorageKey  string `gorm:"type:varchar(255)"`
	UploadedBy  string `gorm:"type:varchar(36)"`
}
