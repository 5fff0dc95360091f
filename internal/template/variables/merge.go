package variables

import "github.com/tacogips/ffizer/internal/template/model"

// Merge walks the flattened traversal order and returns the merged
// variable definitions in first-occurrence order: the first VariableDef
// seen for a name wins; later definitions of the same name are dropped.
func Merge(nodes []*model.TemplateNode) []model.VariableDef {
	seen := make(map[string]bool)
	var merged []model.VariableDef
	for _, n := range nodes {
		for _, def := range n.Config.Variables {
			if seen[def.Name] {
				continue
			}
			seen[def.Name] = true
			merged = append(merged, def)
		}
	}
	return merged
}
