package internal

import (
	"mindmate/internal/providers"
	"mindmate/internal/services"
	"mindmate/internal/structures"
)

// Client is the object graph used by one-shot CLI commands.
type Client struct {
	Conf     *structures.Config
	Logger   providers.Logger
	Service  services.OperationServiceInterface
	Workflow services.MoodWorkflowInterface
	Daily    *services.DailyView
	Weekly   *services.WeeklyView
}

func NewClient(conf *structures.Config, logger providers.Logger, service services.OperationServiceInterface, workflow services.MoodWorkflowInterface, daily *services.DailyView, weekly *services.WeeklyView) *Client {
	return &Client{
		Conf:     conf,
		Logger:   logger,
		Service:  service,
		Workflow: workflow,
		Daily:    daily,
		Weekly:   weekly,
	}
}

func (c *Client) Close() {
	c.Logger.Close()
}
