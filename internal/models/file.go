package models

// File represents an uploaded audio asset stored under Name in the upload directory
type File struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;index"`
}

// TableName keeps the singular table name
func (File) TableName() string {
	return "file"
}
