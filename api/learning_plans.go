package api

import (
	"context"

	"github.com/jrsteele09/skillshare-client/model"
)

func (c *Client) LearningPlans(ctx context.Context) ([]model.LearningPlan, error) {
	var plans []model.LearningPlan
	if err := c.get(ctx, c.endpoint("learning-plans"), &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) LearningPlan(ctx context.Context, planID int64) (*model.LearningPlan, error) {
	var plan model.LearningPlan
	if err := c.get(ctx, c.endpoint("learning-plans", id(planID)), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) UserLearningPlans(ctx context.Context, userID int64) ([]model.LearningPlan, error) {
	var plans []model.LearningPlan
	if err := c.get(ctx, c.endpoint("learning-plans", "user", id(userID)), &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) CreateLearningPlan(ctx context.Context, req model.LearningPlanRequest) (*model.LearningPlan, error) {
	var plan model.LearningPlan
	if err := c.post(ctx, c.endpoint("learning-plans"), req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) UpdateLearningPlan(ctx context.Context, planID int64, req model.LearningPlanRequest) (*model.LearningPlan, error) {
	var plan model.LearningPlan
	if err := c.put(ctx, c.endpoint("learning-plans", id(planID)), req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) DeleteLearningPlan(ctx context.Context, planID int64) error {
	return c.delete(ctx, c.endpoint("learning-plans", id(planID)))
}
