package models

// SettingRequest sets a single setting value.
type SettingRequest struct {
	Value string `json:"value"`
}

// SettingResponse is a single setting.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingsResponse lists all settings.
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}
