package models

// Song represents a catalogued track backed by exactly one File
type Song struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	FileID uint `json:"-" gorm:"not null;index"`
	File   File `json:"file" gorm:"foreignKey:FileID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName keeps the singular table name
func (Song) TableName() string {
	return "song"
}
