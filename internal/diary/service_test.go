package diary

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCreateEntryValidation(t *testing.T) {
	svc := NewService(nil, nil)
	userID := uuid.New()

	_, err := svc.CreateEntry(userID, CreateEntryRequest{Content: "   ", Emotion: "JOY"})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("blank content: err = %v, want ErrEmptyContent", err)
	}

	_, err = svc.CreateEntry(userID, CreateEntryRequest{Content: "좋은 하루", Emotion: "ECSTATIC"})
	if !errors.Is(err, ErrInvalidEmotion) {
		t.Errorf("unknown emotion: err = %v, want ErrInvalidEmotion", err)
	}
}

func TestIsValidEmotion(t *testing.T) {
	for _, e := range Emotions {
		if !isValidEmotion(string(e)) {
			t.Errorf("isValidEmotion(%q) = false", e)
		}
	}
	for _, bad := range []string{"", "joy", "GREAT_DAY", "HAPPY"} {
		if isValidEmotion(bad) {
			t.Errorf("isValidEmotion(%q) = true", bad)
		}
	}
}
