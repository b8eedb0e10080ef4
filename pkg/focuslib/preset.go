package focuslib

// SchedulePreset is a canned focus session.
type SchedulePreset struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Emoji        string `json:"emoji"`
	FocusMinutes int    `json:"focus_minutes"`
}

// DefaultPresets are the built-in session presets.
var DefaultPresets = []SchedulePreset{
	{Id: "short", Name: "Short focus", Emoji: "⚡", FocusMinutes: 30},
	{Id: "standard", Name: "Standard", Emoji: "🎯", FocusMinutes: 60},
	{Id: "deep", Name: "Deep work", Emoji: "🔥", FocusMinutes: 120},
}

// PresetById looks up a built-in preset.
func PresetById(id string) (SchedulePreset, bool) {
	for _, p := range DefaultPresets {
		if p.Id == id {
			return p, true
		}
	}
	return SchedulePreset{}, false
}
