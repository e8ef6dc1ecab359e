package menu

import (
	"testing"

	"pizzaria-veneza/pos-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Lookups(t *testing.T) {
	catalog := Default()

	mussarela, ok := catalog.Pizza("05")
	require.True(t, ok)
	assert.Equal(t, "Mussarela", mussarela.Name)
	medium, ok := mussarela.Price(domain.SizeMedium)
	require.True(t, ok)
	assert.Equal(t, "63.00", medium.StringFixed(2))

	_, ok = catalog.Pizza("99")
	assert.False(t, ok)

	catupiry, ok := catalog.Crust("Catupiry")
	require.True(t, ok)
	assert.Equal(t, "7.00", catupiry.Surcharge.StringFixed(2))
	assert.True(t, catalog.PlainCrust().Surcharge.IsZero())

	bacon, ok := catalog.AddOn("Bacon")
	require.True(t, ok)
	assert.Equal(t, "6.00", bacon.Surcharge.StringFixed(2))

	pancake, ok := catalog.Pancake(GeneralPancakeID)
	require.True(t, ok)
	assert.True(t, pancake.PizzaFlavored)

	delValle, ok := catalog.Drink(DelValleID)
	require.True(t, ok)
	assert.Contains(t, delValle.Flavors, "Uva")

	assert.True(t, catalog.HasCaipirinhaBase("Vodka"))
	assert.False(t, catalog.HasCaipirinhaFruit("Kiwi"))
}

func TestDefault_FixedItemIDsAreUnique(t *testing.T) {
	catalog := Default()
	seen := map[string]bool{}
	for _, pancake := range catalog.Pancakes {
		assert.False(t, seen[pancake.ID], pancake.ID)
		seen[pancake.ID] = true
	}
	for _, group := range catalog.Drinks {
		for _, drink := range group.Items {
			assert.False(t, seen[drink.ID], drink.ID)
			seen[drink.ID] = true
		}
	}
	assert.Len(t, catalog.Pizzas(), 36)
}
