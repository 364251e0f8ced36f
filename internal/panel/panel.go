package panel

import (
	"github.com/bnema/request-inspector/internal/models"
	"github.com/bnema/request-inspector/internal/options"
)

// URLPatternPlaceholder is shown in the empty URL pattern control
const URLPatternPlaceholder = "Pattern with *"

// ChangeFunc receives the complete new filter after a single-field edit
type ChangeFunc func(models.Filter)

// Control describes one option widget the panel renders
type Control struct {
	Field       models.Field
	Label       string
	Placeholder string
	Value       models.Value
	Options     []string
	Multiple    bool // several values may be selected
	FreeText    bool // values outside Options are accepted
	OnChange    func(models.Value)
}

// FilterPanel derives option lists from the loaded requests and merges
// widget edits into the owner's filter
type FilterPanel struct {
	filters        models.Filter
	onFilterChange ChangeFunc
	data           []models.NetworkRequest
}

// New creates a panel from its props. None of them is modified.
func New(filters models.Filter, onFilterChange ChangeFunc, data []models.NetworkRequest) *FilterPanel {
	return &FilterPanel{
		filters:        filters,
		onFilterChange: onFilterChange,
		data:           data,
	}
}

// Filters returns the filter the panel was built with
func (p *FilterPanel) Filters() models.Filter {
	return p.filters
}

// Options recomputes every option list from the current data
func (p *FilterPanel) Options() options.Options {
	return options.Derive(p.data)
}

// HandleChange returns the change handler for one field
func (p *FilterPanel) HandleChange(field models.Field) func(models.Value) {
	return func(value models.Value) {
		next := p.filters.With(field, value)
		if p.onFilterChange != nil {
			p.onFilterChange(next)
		}
	}
}

// Controls returns the seven controls in display order
func (p *FilterPanel) Controls() []Control {
	opts := p.Options()

	controls := make([]Control, 0, len(models.Fields))
	for _, field := range models.Fields {
		c := Control{
			Field:    field,
			Label:    field.Label(),
			Value:    p.filters.Get(field),
			Options:  opts.For(field),
			OnChange: p.HandleChange(field),
		}

		switch field {
		case models.FieldDomains:
			c.Multiple = true
			if c.Value.IsEmpty() {
				c.Value = models.Multi(nil)
			}
		case models.FieldURLPattern:
			c.FreeText = true
			c.Placeholder = URLPatternPlaceholder
		}

		controls = append(controls, c)
	}

	return controls
}
