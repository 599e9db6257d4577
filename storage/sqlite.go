package storage

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trivia/domain"
)

// SQLiteStorage is the GORM/SQLite adapter for the Storage port, grounded
// in the teacher's database.InitDB/GetDB pattern. path may be ":memory:"
// for tests.
type SQLiteStorage struct {
	db     *gorm.DB
	source QuestionSource
}

func Open(path string, source QuestionSource) (*SQLiteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&userRow{}, &questionRow{}, &answerRow{}, &statisticsRow{}); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	log.Printf("✅ storage: opened %s", path)
	return &SQLiteStorage{db: db, source: source}, nil
}

func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStorage) UserExists(username domain.Username) (bool, error) {
	var count int64
	if err := s.db.Model(&userRow{}).Where("username = ?", username.String()).Count(&count).Error; err != nil {
		return false, fmt.Errorf("storage: user_exists: %w", err)
	}
	return count > 0, nil
}

func (s *SQLiteStorage) PasswordMatches(username domain.Username, password domain.Password) (bool, error) {
	var row userRow
	err := s.db.Where("username = ?", username.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, &domain.UserDoesntExistError{Username: username.String()}
	}
	if err != nil {
		return false, fmt.Errorf("storage: password_matches: %w", err)
	}
	// Plaintext comparison: a deliberate Non-goal, matching the original
	// implementation's direct column equality check.
	return row.Password == password.String(), nil
}

func (s *SQLiteStorage) AddUser(username domain.Username, password domain.Password, email domain.Email, phone domain.PhoneNumber, address domain.Address, birthDate domain.BirthDate) error {
	row := userRow{
		Username:  username.String(),
		Password:  password.String(),
		Email:     email.String(),
		Phone:     phone.String(),
		City:      address.City,
		Street:    address.Street,
		Apartment: address.Apartment,
		BirthDate: birthDate.String(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("storage: add_user: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetQuestions(n int) ([]domain.QuestionData, error) {
	var rows []questionRow
	if err := s.db.Preload("Answers").Order("RANDOM()").Limit(n).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("storage: get_questions: %w", err)
	}
	out := make([]domain.QuestionData, 0, len(rows))
	for _, r := range rows {
		qd := domain.QuestionData{ID: r.ID, Content: r.Content}
		for i, a := range r.Answers {
			qd.Answers = append(qd.Answers, a.Content)
			if a.Correct {
				qd.CorrectAnswerIndex = i
			}
		}
		out = append(out, qd)
	}
	return out, nil
}

func (s *SQLiteStorage) AddQuestion(q *domain.QuestionData) (bool, error) {
	var count int64
	if err := s.db.Model(&questionRow{}).Where("content = ?", q.Content).Count(&count).Error; err != nil {
		return false, fmt.Errorf("storage: add_question lookup: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Answers) {
		return false, &domain.NoCorrectAnswerError{Text: q.Content}
	}
	row := questionRow{Content: q.Content}
	for i, a := range q.Answers {
		row.Answers = append(row.Answers, answerRow{Content: a, Correct: i == q.CorrectAnswerIndex})
	}
	if err := s.db.Create(&row).Error; err != nil {
		return false, fmt.Errorf("storage: add_question: %w", err)
	}
	return true, nil
}

// PopulateQuestions performs a best-effort bulk insert from the configured
// question source; duplicates (by content) are silently skipped, making
// repeated calls idempotent against question count.
func (s *SQLiteStorage) PopulateQuestions(n int) error {
	if s.source == nil {
		return fmt.Errorf("storage: populate_questions: no question source configured")
	}
	fetched, err := s.source.FetchQuestions(n)
	if err != nil {
		return fmt.Errorf("storage: populate_questions: fetch: %w", err)
	}
	inserted := 0
	for i := range fetched {
		ok, err := s.AddQuestion(&fetched[i])
		if err != nil {
			log.Printf("⚠️ storage: populate_questions: skipping %q: %v", fetched[i].Content, err)
			continue
		}
		if ok {
			inserted++
		}
	}
	log.Printf("📊 storage: populate_questions inserted %d/%d fetched", inserted, len(fetched))
	return nil
}

func (s *SQLiteStorage) statsRow(username domain.Username) (*statisticsRow, error) {
	var user userRow
	if err := s.db.Where("username = ?", username.String()).First(&user).Error; err != nil {
		return nil, &domain.UserDoesntExistError{Username: username.String()}
	}
	var row statisticsRow
	err := s.db.Where("user_id = ?", user.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NoGamesPlayedError{Username: username.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("storage: stats lookup: %w", err)
	}
	return &row, nil
}

func (s *SQLiteStorage) GetCorrectAnswersCount(username domain.Username) (int, error) {
	row, err := s.statsRow(username)
	if err != nil {
		return 0, err
	}
	return row.CorrectAnswers, nil
}

func (s *SQLiteStorage) GetTotalAnswersCount(username domain.Username) (int, error) {
	row, err := s.statsRow(username)
	if err != nil {
		return 0, err
	}
	return row.TotalAnswers, nil
}

func (s *SQLiteStorage) GetGamesCount(username domain.Username) (int, error) {
	row, err := s.statsRow(username)
	if err != nil {
		return 0, err
	}
	return row.TotalGames, nil
}

func (s *SQLiteStorage) GetScore(username domain.Username) (float64, error) {
	row, err := s.statsRow(username)
	if err != nil {
		return 0, err
	}
	return row.OverallScore, nil
}

func (s *SQLiteStorage) GetPlayerAverageAnswerTime(username domain.Username) (time.Duration, error) {
	row, err := s.statsRow(username)
	if err != nil {
		return 0, err
	}
	return time.Duration(row.AverageAnswerTime * float64(time.Second)), nil
}

func (s *SQLiteStorage) GetFiveHighScores() ([]domain.HighScore, error) {
	type joined struct {
		Username     string
		OverallScore float64
	}
	var rows []joined
	err := s.db.Table("statistics").
		Joins("JOIN user ON user.id = statistics.user_id").
		Select("user.username AS username, statistics.overall_score AS overall_score").
		Order("statistics.overall_score DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("storage: get_five_highscores: %w", err)
	}
	out := make([]domain.HighScore, len(rows))
	for i, r := range rows {
		out[i] = domain.HighScore{Username: r.Username, Score: r.OverallScore}
	}
	return out, nil
}

// SubmitGameData atomically upserts a player's aggregate statistics,
// combining prior totals with the just-finished game's contribution.
func (s *SQLiteStorage) SubmitGameData(username domain.Username, data domain.GameData) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user userRow
		if err := tx.Where("username = ?", username.String()).First(&user).Error; err != nil {
			return &domain.UserDoesntExistError{Username: username.String()}
		}

		var row statisticsRow
		err := tx.Where("user_id = ?", user.ID).First(&row).Error
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isNew {
			return fmt.Errorf("storage: submit_game_data lookup: %w", err)
		}
		if isNew {
			row = statisticsRow{UserID: user.ID}
		}

		answeredThisGame := data.CorrectAnswers + data.WrongAnswers
		totalBefore := row.TotalAnswers
		totalAfter := totalBefore + answeredThisGame
		if totalAfter > 0 {
			weightedBefore := row.AverageAnswerTime * float64(totalBefore)
			weightedGame := data.AverageTime.Seconds() * float64(answeredThisGame)
			row.AverageAnswerTime = (weightedBefore + weightedGame) / float64(totalAfter)
		}
		row.CorrectAnswers += data.CorrectAnswers
		row.TotalAnswers = totalAfter
		row.TotalGames++
		row.OverallScore = domain.Score(row.CorrectAnswers, time.Duration(row.AverageAnswerTime*float64(time.Second)))

		if isNew {
			return tx.Create(&row).Error
		}
		return tx.Save(&row).Error
	})
}
