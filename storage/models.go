package storage

// Persisted row shapes, adapted from the teacher's models package to the
// four logical tables named in the spec: user, question, answer,
// statistics.

type userRow struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"uniqueIndex;size:20;not null"`
	Password  string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Phone     string `gorm:"not null"`
	City      string
	Street    string
	Apartment uint32
	BirthDate string `gorm:"size:10"` // dd/mm/yyyy
}

func (userRow) TableName() string { return "user" }

type questionRow struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	Content string `gorm:"uniqueIndex;not null"`
	Answers []answerRow `gorm:"foreignKey:QuestionID"`
}

func (questionRow) TableName() string { return "question" }

type answerRow struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	Content    string `gorm:"not null"`
	Correct    bool
	QuestionID uint64 `gorm:"index;not null"`
}

func (answerRow) TableName() string { return "answer" }

type statisticsRow struct {
	UserID            uint64 `gorm:"primaryKey"`
	CorrectAnswers    int
	TotalAnswers      int
	AverageAnswerTime float64 // seconds
	TotalGames        int
	OverallScore      float64
}

func (statisticsRow) TableName() string { return "statistics" }
