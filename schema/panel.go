package schema

// CPControl is a physical control mounted on a control panel.
type CPControl struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	Type                   ControlType `json:"type"`
	NumButtons             int         `json:"num_buttons"`
	IsOnOppositeScreenSide bool        `json:"is_on_opposite_screen_side"`
}

// CPButtonCluster is a group of plain buttons on a control panel.
type CPButtonCluster struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	NumButtons             int    `json:"num_buttons"`
	IsOnOppositeScreenSide bool   `json:"is_on_opposite_screen_side"`
}

// CPControlSet groups panel controls and an optional button cluster meant for one player.
// Members are referenced by ID.
type CPControlSet struct {
	ControlIDs      []string `json:"control_ids"`
	ButtonClusterID string   `json:"button_cluster_id,omitempty"`
}

// CPConfiguration is a whole control panel. IDs are unique within their kind.
type CPConfiguration struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Controls       []CPControl       `json:"controls"`
	ButtonClusters []CPButtonCluster `json:"button_clusters"`
	ControlSets    []CPControlSet    `json:"control_sets"`
}

// Control looks up a panel control by ID.
func (c *CPConfiguration) Control(id string) *CPControl {
	for i := range c.Controls {
		if c.Controls[i].ID == id {
			return &c.Controls[i]
		}
	}
	return nil
}

// ButtonCluster looks up a button cluster by ID.
func (c *CPConfiguration) ButtonCluster(id string) *CPButtonCluster {
	for i := range c.ButtonClusters {
		if c.ButtonClusters[i].ID == id {
			return &c.ButtonClusters[i]
		}
	}
	return nil
}

// Label returns the display name of the panel, falling back to its ID.
func (c *CPConfiguration) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
