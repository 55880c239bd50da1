package reminderRepo

import (
	"encoding/json"
	"fmt"
	"os"

	"vaxremind/models"
)

// LoadFile reads a JSON array of reminders, the same shape the foreground app stores.
func LoadFile(path string) (StaticRepo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	var reminders []models.Reminder
	if err := json.Unmarshal(b, &reminders); err != nil {
		return nil, fmt.Errorf("LoadFile: invalid reminders in %s: %w", path, err)
	}
	return StaticRepo(reminders), nil
}
