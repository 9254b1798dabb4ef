package dto

// GateDTO 灰度开关状态
type GateDTO struct {
	Name        string `json:"name"`
	Percent     int    `json:"percent"`
	Description string `json:"description"`
}

// SetGateDTO 灰度开关 - 调整放量
type SetGateDTO struct {
	Percent     int     `json:"percent" validate:"min=0,max=100"`
	Description *string `json:"description,omitempty"`
}
