package dto

// UpsertSettingRequest 写入配置请求
type UpsertSettingRequest struct {
	Section string `json:"section" binding:"required,max=50"`
	Key     string `json:"key" binding:"required,max=100"`
	Value   string `json:"value"`
}

// SettingInfo 配置项
type SettingInfo struct {
	Section   string `json:"section"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
