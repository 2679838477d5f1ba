package models

type GenerateStoryResponse struct {
	Story  string `json:"story"`
	Mood   string `json:"mood"`
	Length string `json:"length"`
	Status string `json:"status"`
}
