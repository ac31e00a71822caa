package model

type PaperStatus string

const (
	PaperUploaded  PaperStatus = "uploaded"
	PaperProcessed PaperStatus = "processed"
	PaperError     PaperStatus = "error"
)

// Paper 上传的试卷/作业，OCR 识别的入口产物
type Paper struct {
	BaseModel
	Title            string      `gorm:"size:255;not null" json:"title"`
	OriginalImageURL string      `gorm:"size:512" json:"originalImageUrl"`
	Status           PaperStatus `gorm:"type:varchar(50);default:'uploaded'" json:"status"`

	Questions []Question `gorm:"foreignKey:PaperID" json:"questions,omitempty"`
}

func (Paper) TableName() string {
	return "papers"
}
