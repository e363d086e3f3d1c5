package model

// AIStatus is the machine-readable system summary served to automation.
type AIStatus struct {
	Payload `json:"-"`

	Timestamp    int64           `json:"timestamp"`
	System       SystemHealth    `json:"system"`
	Summary      map[string]any  `json:"summary"`
	Capabilities map[string]bool `json:"capabilities"`
	Actions      []AIAction      `json:"actions"`
}

type SystemHealth struct {
	Healthy    bool `json:"healthy"`
	AlertCount int  `json:"alertCount"`
}

// AIAnalysis carries the server's recommendations and warnings.
type AIAnalysis struct {
	Payload `json:"-"`

	Recommendations []string       `json:"recommendations"`
	Warnings        []string       `json:"warnings"`
	Metrics         map[string]any `json:"metrics"`
}

// AIAction is a named control operation the server can execute.
type AIAction struct {
	Payload `json:"-"`

	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Params      map[string]any `json:"params,omitempty"`
}

type ActionResult struct {
	Payload `json:"-"`

	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PowerProfile is an OS power plan.
type PowerProfile struct {
	Payload `json:"-"`

	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
