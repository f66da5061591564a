package models

type Entry struct {
	EntryID int    `gorm:"column:entry_id;primaryKey;autoIncrement" json:"-"`
	ListKey string `gorm:"column:list_key;index"                     json:"-"`
	Title   string `gorm:"column:title"                              json:"title"`
	Text    string `gorm:"column:text"                               json:"text"`
}

func (Entry) TableName() string { return "entries" }
