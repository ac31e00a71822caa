package model

type ExportStatus string

const (
	ExportCompleted ExportStatus = "completed"
	ExportFailed    ExportStatus = "failed"
)

// Export 导出任务记录。生成是同步完成的，响应保留 job_id/status/download_url
// 的任务形态以兼容客户端。
type Export struct {
	BaseModel
	JobID         string       `gorm:"size:36;not null;uniqueIndex" json:"jobId"`
	Title         string       `gorm:"size:255;not null" json:"title"`
	OriginalText  string       `gorm:"type:text;not null" json:"originalText"`
	VariantsJSON  string       `gorm:"type:text;not null" json:"variantsJson"`
	IncludeImages bool         `gorm:"default:true" json:"includeImages"`
	Format        string       `gorm:"size:10;default:'pdf'" json:"format"`
	Status        ExportStatus `gorm:"type:varchar(50)" json:"status"`
	DownloadURL   string       `gorm:"size:512" json:"downloadUrl"`
	ErrorMessage  string       `gorm:"type:text" json:"errorMessage"`
}

func (Export) TableName() string {
	return "exports"
}
