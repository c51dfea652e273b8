package model

// Testimonial 校友感言表，提交后需管理员审核通过才对外展示
type Testimonial struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	User     User   `gorm:"foreignKey:UserID;references:ID;constraint:false" json:"user,omitempty"`
	Content  string `gorm:"size:500;not null" json:"content"`
	Approved bool   `gorm:"default:false;index" json:"approved"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
