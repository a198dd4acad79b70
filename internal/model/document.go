package model

import "encoding/json"

// Document RAG知识库的参考文档
// swagger:model Document
type Document struct {
	BaseModel
	Title      string          `gorm:"size:255;not null" json:"title"`
	ObjectKey  string          `gorm:"size:500;not null" json:"-"` // minio对象键或本地路径
	FileType   string          `gorm:"size:50;not null" json:"fileType"`
	FileSize   int64           `gorm:"not null" json:"fileSize"`
	Processed  bool            `gorm:"default:false" json:"processed"`
	ChunkIDs   json.RawMessage `gorm:"type:json" json:"-"` // 向量索引里的分块ID
	CourseID   uint            `gorm:"index;type:bigint unsigned" json:"courseId"`
	UploadedBy uint            `gorm:"index;type:bigint unsigned" json:"uploadedBy"`
	Uploader   *User           `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}
