package domain

import "time"

// Tag is a global label shared by staging and published questions.
// The two question kinds link to tags through independent join tables;
// the sync engine copies the staging tag set onto the published row at
// sync time rather than sharing links.
type Tag struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }
