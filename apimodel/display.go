package apimodel

type WeatherInfo struct {
	High     *string `json:"high"`
	Low      *string `json:"low"`
	Category *string `json:"category"`
}

type ModeInfo struct {
	Visible         bool   `json:"visible"`
	Ambient         bool   `json:"ambient"`
	LowBitAmbient   bool   `json:"low_bit_ambient"`
	Round           bool   `json:"round"`
	TimerRunning    bool   `json:"timer_running"`
	TimeZone        string `json:"time_zone"`
	ConnectionState string `json:"connection_state"`
	Subscribed      bool   `json:"subscribed"`
}

type TimeZoneRequest struct {
	Zone string `json:"zone"`
}
