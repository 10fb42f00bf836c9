package models

// PracticeRequest picks questions for a practice quiz. Unit "All" and
// difficulty "any" disable the respective filter; Count <= 0 keeps every match.
type PracticeRequest struct {
	Unit       string `json:"unit"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=any easy medium hard"`
	Count      int    `json:"count" validate:"min=0"`
}

type PracticeResponse struct {
	Questions []PublicQuestion `json:"questions"`
	Available int              `json:"available"`
}

// ScoreRequest carries the chosen option text per question id.
type ScoreRequest struct {
	QuestionIDs []string          `json:"questionIds" validate:"required,min=1,dive,len=24,hexadecimal"`
	Answers     map[string]string `json:"answers"`
}
