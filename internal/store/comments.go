package store

import (
	"encoding/json"
	"strings"
	"time"
)

// Comment is one note pinned to an agent::debtor pair. Comments are keyed by
// the raw display names, so they survive re-uploads but detach if a debtor's
// name is respelled in a later file.
type Comment struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

// Early deployments stored comments as bare strings. They are folded into the
// record shape once here, at decode time, instead of being special-cased on
// every read.
func (c *Comment) UnmarshalJSON(b []byte) error {
	var legacy string
	if err := json.Unmarshal(b, &legacy); err == nil {
		c.Text = legacy
		c.Date = ""
		return nil
	}
	type plain Comment
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = Comment(p)
	return nil
}

func CommentKey(agent, client string) string {
	return agent + "::" + client
}

func (s *Store) Comments() map[string]Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Comment, len(s.comments))
	for k, v := range s.comments {
		out[k] = v
	}
	return out
}

// SetComment stores the note for one debtor; empty text deletes it.
func (s *Store) SetComment(agent, client, text string) {
	key := CommentKey(agent, client)
	trimmed := strings.TrimSpace(text)
	s.mu.Lock()
	if trimmed == "" {
		delete(s.comments, key)
	} else {
		s.comments[key] = Comment{
			Text: trimmed,
			Date: time.Now().UTC().Format(time.RFC3339),
		}
	}
	s.mu.Unlock()
	s.Persist()
}
