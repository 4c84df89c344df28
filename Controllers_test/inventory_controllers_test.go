package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardiansyahdev/mechanic-shop/models"
)

func TestInventoryIsMechanicOnly(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	seedCustomer(t, db, "jane@example.com", "custpass")
	seedMechanic(t, db, "mike@example.com", "mechpass")

	w := performRequest(r, http.MethodGet, "/inventory/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	custToken := loginCustomer(t, r, "jane@example.com", "custpass")
	w = performRequest(r, http.MethodGet, "/inventory/", nil, custToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	mechToken := loginMechanic(t, r, "mike@example.com", "mechpass")
	w = performRequest(r, http.MethodGet, "/inventory/", nil, mechToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInventoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	seedMechanic(t, db, "mike@example.com", "mechpass")
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	w := performRequest(r, http.MethodPost, "/inventory/", map[string]interface{}{
		"part_name":   "Brake Pad",
		"description": "Ceramic front pad",
		"price":       35.99,
		"quantity":    12,
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	id := uint(created["id"].(float64))
	assert.Equal(t, "Brake Pad", created["part_name"])

	w = performRequest(r, http.MethodPut, fmt.Sprintf("/inventory/%d", id), map[string]interface{}{
		"price": 29.99,
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, 29.99, updated["price"])
	// Fields absent from the payload keep their values.
	assert.Equal(t, "Brake Pad", updated["part_name"])

	w = performRequest(r, http.MethodGet, fmt.Sprintf("/inventory/%d", id), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodDelete, fmt.Sprintf("/inventory/%d", id), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&models.Inventory{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = performRequest(r, http.MethodGet, fmt.Sprintf("/inventory/%d", id), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
