package store

import (
	"encoding/json"
	"testing"
)

func TestCommentUnmarshalLegacyString(t *testing.T) {
	raw := []byte(`{"Bekzod::Aliyev Vali":"eski izoh","Bekzod::Karimova":{"text":"yangi","date":"2025-01-01T09:00:00Z"}}`)
	var comments map[string]Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	legacy := comments[CommentKey("Bekzod", "Aliyev Vali")]
	if legacy.Text != "eski izoh" || legacy.Date != "" {
		t.Errorf("legacy string not migrated: %+v", legacy)
	}
	current := comments[CommentKey("Bekzod", "Karimova")]
	if current.Text != "yangi" || current.Date != "2025-01-01T09:00:00Z" {
		t.Errorf("record comment mangled: %+v", current)
	}
}

func TestSetComment(t *testing.T) {
	s := NewStore()
	s.SetComment("Bekzod", "Aliyev Vali", "  to'laydi dedi  ")

	got := s.Comments()[CommentKey("Bekzod", "Aliyev Vali")]
	if got.Text != "to'laydi dedi" {
		t.Errorf("comment text = %q", got.Text)
	}
	if got.Date == "" {
		t.Error("comment date not stamped")
	}
}

func TestSetCommentEmptyDeletes(t *testing.T) {
	s := NewStore()
	s.SetComment("Bekzod", "Aliyev Vali", "izoh")
	s.SetComment("Bekzod", "Aliyev Vali", "   ")

	if _, ok := s.Comments()[CommentKey("Bekzod", "Aliyev Vali")]; ok {
		t.Error("empty comment must delete the entry")
	}
}

func TestCommentsIsCopy(t *testing.T) {
	s := NewStore()
	s.SetComment("Bekzod", "Aliyev Vali", "izoh")
	m := s.Comments()
	delete(m, CommentKey("Bekzod", "Aliyev Vali"))
	if _, ok := s.Comments()[CommentKey("Bekzod", "Aliyev Vali")]; !ok {
		t.Error("Comments leaked internal map")
	}
}
