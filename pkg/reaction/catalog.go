package reaction

import (
	"fmt"

	"reactcore/pkg/nuclide"
)

var (
	categoryCatalog   []ReactionCategory
	categoryByKey     = map[CategoryKey]ReactionCategory{}
	categoryByName    = map[string]ReactionCategory{}
	productionCatalog []ProductionReactionCategory
	productionByName  = map[string]ProductionReactionCategory{}
)

func define(name string, typus Typus, releases ...Particle) ReactionCategory {
	cat := NewReactionCategory(typus, releases, 0)
	cat.name = name
	if _, dup := categoryByKey[cat.Key()]; dup {
		panic(fmt.Sprintf("reaction: duplicate category tag %s", typus))
	}
	categoryCatalog = append(categoryCatalog, cat)
	categoryByKey[cat.Key()] = cat
	categoryByName[name] = cat
	return cat
}

func defineProduction(name string, produces nuclide.ZAID, typus ProdTypus) ProductionReactionCategory {
	cat := NewProductionCategory(produces, typus)
	cat.name = name
	productionCatalog = append(productionCatalog, cat)
	productionByName[name] = cat
	return cat
}

// Categories returns the reaction category catalog in declaration order.
func Categories() []ReactionCategory {
	return append([]ReactionCategory(nil), categoryCatalog...)
}

// ProductionCategories returns the production category catalog in declaration order.
func ProductionCategories() []ProductionReactionCategory {
	return append([]ProductionReactionCategory(nil), productionCatalog...)
}

// LookupCategory finds the catalog category with the given tag and ground target state.
func LookupCategory(typus Typus) (ReactionCategory, bool) {
	cat, ok := categoryByKey[CategoryKey{Typus: typus}]
	return cat, ok
}

// CategoryByName finds a catalog category by its exported name, e.g. "N2N".
func CategoryByName(name string) (ReactionCategory, bool) {
	cat, ok := categoryByName[name]
	return cat, ok
}

// ProductionCategoryByName finds a production category by its exported name, e.g. "NPtot".
func ProductionCategoryByName(name string) (ProductionReactionCategory, bool) {
	cat, ok := productionByName[name]
	return cat, ok
}
