package handlers

import (
	"encoding/json"

	"io.ruvo/notification/internal/domain"
)

func init() {
	Register(TopicFeed, "ARTICLE_PUBLISHED", handleArticlePublished)
}

type feedEnv struct {
	EventType string `json:"eventType"`
	EventID   string `json:"eventId"`
	Payload   struct {
		ArticleID   string `json:"articleId"`
		Title       string `json:"title"`
		Summary     string `json:"summary"`
		Category    string `json:"category"`
		Urgency     string `json:"urgency"`
		PublishedAt string `json:"publishedAt"`
	} `json:"payload"`
}

func handleArticlePublished(data []byte) *domain.IngestInput {
	var env feedEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	if env.Payload.Title == "" {
		return nil
	}

	id := env.Payload.ArticleID
	if id == "" {
		id = env.EventID
	}
	return &domain.IngestInput{Signal: &domain.Signal{
		ID:          id,
		Title:       env.Payload.Title,
		Summary:     env.Payload.Summary,
		Category:    env.Payload.Category,
		Urgency:     normalizeUrgency(env.Payload.Urgency, domain.UrgencyLow),
		PublishedAt: parseTimestamp(env.Payload.PublishedAt),
	}}
}
