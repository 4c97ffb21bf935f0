package models

import "fmt"

// Category names a competitive context a match was played in. Each category
// carries a rating weight that scales the K-factor of confirmed matches.
type Category string

const (
	CategoryReyMesa     Category = "rey_mesa"
	CategoryTorneo      Category = "torneo"
	CategoryLigaGrupos  Category = "liga_grupos"
	CategoryLigaFinales Category = "liga_finales"
)

var categoryWeights = map[Category]float64{
	CategoryReyMesa:     1.0,
	CategoryTorneo:      1.5,
	CategoryLigaGrupos:  2.0,
	CategoryLigaFinales: 2.5,
}

// Categories lists every valid category in ascending weight order.
func Categories() []Category {
	return []Category{CategoryReyMesa, CategoryTorneo, CategoryLigaGrupos, CategoryLigaFinales}
}

// Weight returns the rating weight of the category, or 0 for unknown ones.
func (c Category) Weight() float64 {
	return categoryWeights[c]
}

func (c Category) Valid() bool {
	_, ok := categoryWeights[c]
	return ok
}

// ParseCategory validates a raw category string.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("unknown match category %q", raw)
	}
	return c, nil
}
