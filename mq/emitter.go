package mq

import "log"

// Index describes a domain event: recipe created/updated/deleted, a
// favorite/cart toggle, or a follow change.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	UserId     string `json:"user_id"`
}

// Emit publishes a domain event. Transport is log-only for now; consumers
// (search indexing, notifications) attach here later.
func Emit(eventName string, content Index) error {
	log.Printf("event %s: %s %s %s by %s", eventName, content.Method, content.EntityType, content.EntityId, content.UserId)
	return nil
}
