package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanisidro/restaurant-app/services"
	"github.com/sanisidro/restaurant-app/utils"
)

func TestProductCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewProductService(db)

	var ve *utils.ValidationError

	_, err := svc.Create(services.ProductInput{
		Name: "", Description: "d", Category: "c", Price: mustDecimal(t, "10.00"),
	})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Create(services.ProductInput{
		Name: "Ceviche", Description: "d", Category: "c", Price: mustDecimal(t, "0"),
	})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Create(services.ProductInput{
		Name: "Ceviche", Description: "d", Category: "c", Price: mustDecimal(t, "-5.00"),
	})
	assert.ErrorAs(t, err, &ve)

	product, err := svc.Create(services.ProductInput{
		Name: "Ceviche", Description: "Pescado fresco", Category: "Entradas",
		Price: mustDecimal(t, "32.00"),
	})
	require.NoError(t, err)
	assert.True(t, product.Available, "products default to available")
}

func TestProductAvailabilityToggle(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewProductService(db)

	product, err := svc.Create(services.ProductInput{
		Name: "Lomo Saltado", Description: "Clasico", Category: "Platos",
		Price: mustDecimal(t, "28.00"),
	})
	require.NoError(t, err)

	updated, err := svc.SetAvailability(product.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	available, err := svc.ListAvailable()
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = svc.SetAvailability(9999, true)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestProductQueries(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewProductService(db)

	seed := []struct {
		name, category, price string
	}{
		{"Ceviche", "Entradas", "32.00"},
		{"Causa Limeña", "Entradas", "18.00"},
		{"Lomo Saltado", "Platos", "28.00"},
	}
	for _, s := range seed {
		_, err := svc.Create(services.ProductInput{
			Name: s.name, Description: "x", Category: s.category,
			Price: mustDecimal(t, s.price),
		})
		require.NoError(t, err)
	}

	entradas, err := svc.ListByCategory("Entradas")
	require.NoError(t, err)
	assert.Len(t, entradas, 2)

	cheap, err := svc.ListByPriceRange(mustDecimal(t, "10.00"), mustDecimal(t, "20.00"))
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, "Causa Limeña", cheap[0].Name)

	var ve *utils.ValidationError
	_, err = svc.ListByPriceRange(mustDecimal(t, "20.00"), mustDecimal(t, "10.00"))
	assert.ErrorAs(t, err, &ve)

	byName, err := svc.SearchByName("lomo")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	categories, err := svc.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Entradas", "Platos"}, categories)
}
