package models

// MatchRequest is the body of POST /match-skill. UserSkill is a pointer so a
// missing field can be told apart from a legal empty string.
type MatchRequest struct {
	UserSkill *string `json:"user_skill"`
}

type Match struct {
	Skill  string  `json:"skill"`
	Score  float64 `json:"score"`
	Method string  `json:"method"`
}

type MatchResponse struct {
	SubmittedSkill string  `json:"submitted_skill"`
	Matches        []Match `json:"matches"`
}

type SkillListResponse struct {
	Skills []string `json:"skills"`
	Count  int      `json:"count"`
}

type SimilarSkill struct {
	Skill string  `json:"skill"`
	Score float32 `json:"score"`
}

type SimilarSkillsResponse struct {
	Query   string         `json:"query"`
	Results []SimilarSkill `json:"results"`
}
