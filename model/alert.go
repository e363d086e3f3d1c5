package model

// Alert is a server-side alert rule. ID is assigned by the server.
type Alert struct {
	Payload `json:"-"`

	ID         string `json:"id"`
	Name       string `json:"name"`
	SensorPath string `json:"sensorPath"`
	Condition  string `json:"condition"`
	Enabled    bool   `json:"enabled"`
}
