package entities

// DefaultTranslation is used when a user registers without picking one.
const DefaultTranslation = "NIV"

// User is an account in the local store. The phone number is the sole login
// credential and is immutable once the row exists.
type User struct {
	ID                   string    `gorm:"column:id;primaryKey" json:"id"`
	Name                 string    `gorm:"column:name" json:"name"`
	Phone                string    `gorm:"column:phone" json:"phone"`
	Denomination         string    `gorm:"column:denomination" json:"denomination,omitempty"`
	PreferredTranslation string    `gorm:"column:preferredTranslation" json:"preferredTranslation"`
	CreatedAt            Timestamp `gorm:"column:createdAt" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// Verse is a single collected verse owned by one user. UpdatedAt is refreshed
// on every mutation; on creation it equals CreatedAt.
type Verse struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id"`
	Book        string     `gorm:"column:book" json:"book"`
	Chapter     int        `gorm:"column:chapter" json:"chapter"`
	Verse       int        `gorm:"column:verse" json:"verse"`
	Content     string     `gorm:"column:content" json:"content"`
	Reference   string     `gorm:"column:reference" json:"reference"`
	Translation string     `gorm:"column:translation" json:"translation"`
	UserID      string     `gorm:"column:userId" json:"userId"`
	Notes       string     `gorm:"column:notes" json:"notes,omitempty"`
	Tags        StringList `gorm:"column:tags" json:"tags"`
	CreatedAt   Timestamp  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   Timestamp  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Verse) TableName() string {
	return "verses"
}
