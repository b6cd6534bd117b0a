package core

import "github.com/arcadecab/cabcheck/schema"

// panelIndex maps the IDs of one panel to positions in its slices. It is built once per
// allocation and shared by every pool cloned from it.
type panelIndex struct {
	panel    *schema.CPConfiguration
	controls map[string]int
	clusters map[string]int
}

func newPanelIndex(panel *schema.CPConfiguration) *panelIndex {
	idx := &panelIndex{
		panel:    panel,
		controls: make(map[string]int, len(panel.Controls)),
		clusters: make(map[string]int, len(panel.ButtonClusters)),
	}
	// First declaration wins when IDs repeat
	for i := range panel.Controls {
		if _, ok := idx.controls[panel.Controls[i].ID]; !ok {
			idx.controls[panel.Controls[i].ID] = i
		}
	}
	for i := range panel.ButtonClusters {
		if _, ok := idx.clusters[panel.ButtonClusters[i].ID]; !ok {
			idx.clusters[panel.ButtonClusters[i].ID] = i
		}
	}
	return idx
}

// Pool tracks which controls and button clusters of a panel are still free.
// Pools are created per allocation call and never shared between calls.
type Pool struct {
	idx      *panelIndex
	controls []bool
	clusters []bool
}

// NewPool returns a pool with every control and cluster of the panel free.
func NewPool(panel *schema.CPConfiguration) *Pool {
	p := &Pool{
		idx:      newPanelIndex(panel),
		controls: make([]bool, len(panel.Controls)),
		clusters: make([]bool, len(panel.ButtonClusters)),
	}
	for i := range p.controls {
		p.controls[i] = true
	}
	for i := range p.clusters {
		p.clusters[i] = true
	}
	return p
}

// Clone returns an independent snapshot of the pool.
func (p *Pool) Clone() *Pool {
	return &Pool{
		idx:      p.idx,
		controls: append([]bool(nil), p.controls...),
		clusters: append([]bool(nil), p.clusters...),
	}
}

func (p *Pool) controlPos(c *schema.CPControl) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := p.idx.controls[c.ID]
	if !ok || &p.idx.panel.Controls[i] != c {
		return 0, false
	}
	return i, true
}

func (p *Pool) clusterPos(c *schema.CPButtonCluster) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := p.idx.clusters[c.ID]
	if !ok || &p.idx.panel.ButtonClusters[i] != c {
		return 0, false
	}
	return i, true
}

// HasControl reports whether the control belongs to the panel and is still free.
func (p *Pool) HasControl(c *schema.CPControl) bool {
	i, ok := p.controlPos(c)
	return ok && p.controls[i]
}

// HasCluster reports whether the cluster belongs to the panel and is still free.
func (p *Pool) HasCluster(c *schema.CPButtonCluster) bool {
	i, ok := p.clusterPos(c)
	return ok && p.clusters[i]
}

// TakeControl marks the control as used.
func (p *Pool) TakeControl(c *schema.CPControl) {
	if i, ok := p.controlPos(c); ok {
		p.controls[i] = false
	}
}

// TakeCluster marks the cluster as used.
func (p *Pool) TakeCluster(c *schema.CPButtonCluster) {
	if i, ok := p.clusterPos(c); ok {
		p.clusters[i] = false
	}
}

// Controls lists the free controls in panel order.
func (p *Pool) Controls() []*schema.CPControl {
	out := make([]*schema.CPControl, 0, len(p.controls))
	for i, free := range p.controls {
		if free {
			out = append(out, &p.idx.panel.Controls[i])
		}
	}
	return out
}

// Clusters lists the free button clusters in panel order.
func (p *Pool) Clusters() []*schema.CPButtonCluster {
	out := make([]*schema.CPButtonCluster, 0, len(p.clusters))
	for i, free := range p.clusters {
		if free {
			out = append(out, &p.idx.panel.ButtonClusters[i])
		}
	}
	return out
}

// setMembers resolves the IDs of a panel control set. Unknown and repeated IDs are
// skipped and an unknown cluster resolves to nil.
func (p *Pool) setMembers(set *schema.CPControlSet) ([]*schema.CPControl, *schema.CPButtonCluster) {
	controls := make([]*schema.CPControl, 0, len(set.ControlIDs))
	seen := make(map[int]struct{}, len(set.ControlIDs))
	for _, id := range set.ControlIDs {
		i, ok := p.idx.controls[id]
		if !ok {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		controls = append(controls, &p.idx.panel.Controls[i])
	}
	var cluster *schema.CPButtonCluster
	if set.ButtonClusterID != "" {
		if i, ok := p.idx.clusters[set.ButtonClusterID]; ok {
			cluster = &p.idx.panel.ButtonClusters[i]
		}
	}
	return controls, cluster
}
