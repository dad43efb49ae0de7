package handlers

import (
	"encoding/json"

	"io.ruvo/notification/internal/domain"
)

func init() {
	Register(TopicAlerts, "ALERT_TRIGGERED", handleAlertTriggered)
	Register(TopicAlerts, "BREAKING_NEWS", handleBreakingNews)
}

type alertEnv struct {
	EventType string `json:"eventType"`
	EventID   string `json:"eventId"`
	Payload   struct {
		AlertID     string `json:"alertId"`
		UserID      string `json:"userId"`
		Title       string `json:"title"`
		Message     string `json:"message"`
		Category    string `json:"category"`
		Urgency     string `json:"urgency"`
		TriggeredAt string `json:"triggeredAt"`
	} `json:"payload"`
}

func parseAlertEnv(data []byte) (*alertEnv, bool) {
	var env alertEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if env.Payload.Title == "" {
		return nil, false
	}
	return &env, true
}

func alertSignal(env *alertEnv, userID string, fallback domain.Urgency) *domain.IngestInput {
	id := env.Payload.AlertID
	if id == "" {
		id = env.EventID
	}
	return &domain.IngestInput{Signal: &domain.Signal{
		ID:          id,
		Title:       env.Payload.Title,
		Summary:     env.Payload.Message,
		Category:    env.Payload.Category,
		Urgency:     normalizeUrgency(env.Payload.Urgency, fallback),
		PublishedAt: parseTimestamp(env.Payload.TriggeredAt),
		UserID:      userID,
		Alert:       true,
	}}
}

// handleAlertTriggered delivers a personal alert rule hit to its owner.
func handleAlertTriggered(data []byte) *domain.IngestInput {
	env, ok := parseAlertEnv(data)
	if !ok || env.Payload.UserID == "" {
		return nil
	}
	return alertSignal(env, env.Payload.UserID, domain.UrgencyMedium)
}

// handleBreakingNews is an alert matched against every user's interests.
func handleBreakingNews(data []byte) *domain.IngestInput {
	env, ok := parseAlertEnv(data)
	if !ok {
		return nil
	}
	return alertSignal(env, "", domain.UrgencyHigh)
}
