package achievement

import "github.com/milk9111/hauntedpumpkin/event"

const UnlockedEvent event.Type = "achievementUnlocked"

// Unlocked is published once per achievement per install.
type Unlocked struct {
	Achievement Definition
}

func (Unlocked) Type() event.Type { return UnlockedEvent }
