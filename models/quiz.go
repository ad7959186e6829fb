package models

import "gorm.io/gorm"

// QuizResult is the single current quiz standing of an account. The unique
// index on AccountID backs the at-most-one-row-per-account invariant; a
// new submission supersedes the old one atomically.
type QuizResult struct {
	gorm.Model
	AccountID uint `json:"accountId" gorm:"uniqueIndex;not null"`
	Score     int  `json:"score"`
	Total     int  `json:"total"`
}

// QuizQuestion is one generated multiple-choice item. Questions are not
// persisted; they only travel from the AI pipeline to the client.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Translation is the structured result of translating free text into
// Simplified Chinese.
type Translation struct {
	Hanzi  string `json:"hanzi"`
	Pinyin string `json:"pinyin"`
}

// DefaultQuiz returns the fixed question set used whenever quiz
// generation fails. Returned fresh so callers may mutate it.
func DefaultQuiz() []QuizQuestion {
	return []QuizQuestion{
		{
			ID:            "q1",
			Question:      `How do you say "Hello"?`,
			Options:       []string{"Ni hao", "Zai jian", "Xie xie", "Bu ke qi"},
			CorrectAnswer: "Ni hao",
			Explanation:   `"Ni hao" (你好) is the standard greeting.`,
		},
		{
			ID:            "q2",
			Question:      `What does "Xie xie" mean?`,
			Options:       []string{"Hello", "Thank you", "Goodbye", "You're welcome"},
			CorrectAnswer: "Thank you",
			Explanation:   `"Xie xie" (谢谢) means thank you.`,
		},
	}
}
