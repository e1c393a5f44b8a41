package model

import "math"

type LearningStep struct {
	ID             int64  `json:"id,omitempty"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Resources      string `json:"resources,omitempty"`
	Completed      bool   `json:"completed"`
	TargetDate     Date   `json:"targetDate,omitempty"`
	CompletionDate Date   `json:"completionDate,omitempty"`
}

type LearningPlan struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	CompletionTarget Date           `json:"completionTarget,omitempty"`
	Steps            []LearningStep `json:"steps"`
	User             *User          `json:"user,omitempty"`
	CreatedAt        DateTime       `json:"createdAt"`
	UpdatedAt        DateTime       `json:"updatedAt"`
}

// Progress returns the completed share of steps as a whole percentage.
// A plan without steps is at 0.
func (p *LearningPlan) Progress() int {
	if len(p.Steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range p.Steps {
		if s.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(p.Steps)) * 100))
}

type LearningStepRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Resources   string `json:"resources,omitempty"`
	Completed   bool   `json:"completed"`
	TargetDate  Date   `json:"targetDate,omitempty"`
}

type LearningPlanRequest struct {
	Title            string                `json:"title"`
	Description      string                `json:"description,omitempty"`
	CompletionTarget Date                  `json:"completionTarget,omitempty"`
	Steps            []LearningStepRequest `json:"steps,omitempty"`
}

// RequestFrom turns an existing plan into an update body.
func RequestFrom(p *LearningPlan) LearningPlanRequest {
	steps := make([]LearningStepRequest, 0, len(p.Steps))
	for _, s := range p.Steps {
		steps = append(steps, LearningStepRequest{
			Title:       s.Title,
			Description: s.Description,
			Resources:   s.Resources,
			Completed:   s.Completed,
			TargetDate:  s.TargetDate,
		})
	}
	return LearningPlanRequest{
		Title:            p.Title,
		Description:      p.Description,
		CompletionTarget: p.CompletionTarget,
		Steps:            steps,
	}
}
