package handlers

import (
	"encoding/json"

	"io.ruvo/notification/internal/domain"
)

func init() {
	RegisterDirect(TopicCommands, handleDirectCommand)
}

// handleDirectCommand turns a backend push into a persisted notification.
func handleDirectCommand(data []byte) *domain.IngestInput {
	var cmd struct {
		CommandID string `json:"commandId"`
		UserID    string `json:"userId"`
		Title     string `json:"title"`
		Message   string `json:"message"`
		Category  string `json:"category"`
		Urgency   string `json:"urgency"`
	}

	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil
	}
	if cmd.UserID == "" || cmd.Title == "" {
		return nil
	}

	return &domain.IngestInput{Push: &domain.CreateNotificationInput{
		UserID:        cmd.UserID,
		Title:         cmd.Title,
		Message:       cmd.Message,
		Category:      cmd.Category,
		Urgency:       normalizeUrgency(cmd.Urgency, domain.UrgencyLow),
		SourceEventID: cmd.CommandID,
	}}
}
