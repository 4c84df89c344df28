package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardiansyahdev/mechanic-shop/models"
)

func TestMechanicRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := performRequest(r, http.MethodPost, "/mechanic/", map[string]interface{}{
		"name":     "Bob Builder",
		"email":    "bob@example.com",
		"phone":    "555-5678",
		"address":  "456 Garage St",
		"salary":   45000,
		"password": "securepass",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Bob Builder", decodeBody(t, w)["name"])

	w = performRequest(r, http.MethodPost, "/mechanic/login", map[string]string{
		"email": "bob@example.com", "password": "securepass",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "auth_token")
}

func TestMechanicGetRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	mechanic := seedMechanic(t, db, "alice@example.com", "mechpass")

	w := performRequest(r, http.MethodGet, fmt.Sprintf("/mechanic/%d", mechanic.ID), nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginMechanic(t, r, "alice@example.com", "mechpass")
	w = performRequest(r, http.MethodGet, fmt.Sprintf("/mechanic/%d", mechanic.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@example.com", decodeBody(t, w)["email"])
}

func TestMechanicUpdateSelfOnly(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	mechanic := seedMechanic(t, db, "alice@example.com", "mechpass")
	token := loginMechanic(t, r, "alice@example.com", "mechpass")

	w := performRequest(r, http.MethodPut, fmt.Sprintf("/mechanic/%d", mechanic.ID), map[string]interface{}{
		"name": "Alice Updated", "salary": 55000,
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice Updated", decodeBody(t, w)["name"])

	// Foreign ids are 403 before existence is even looked at.
	w = performRequest(r, http.MethodPut, "/mechanic/9999", map[string]string{
		"name": "Hacker",
	}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMechanicDeleteSelf(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	mechanic := seedMechanic(t, db, "alice@example.com", "mechpass")
	token := loginMechanic(t, r, "alice@example.com", "mechpass")

	w := performRequest(r, http.MethodDelete, "/mechanic/9999", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(r, http.MethodDelete, fmt.Sprintf("/mechanic/%d", mechanic.ID), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&models.Mechanic{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMechanicRankings(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	mechanic := seedMechanic(t, db, "alice@example.com", "mechpass")
	idle := seedMechanic(t, db, "idle@example.com", "mechpass")
	ticket := seedTicket(t, db, customer.ID)
	assert.NoError(t, db.Create(&models.ServiceAssignment{
		ServiceTicketID: ticket.ID, MechanicID: mechanic.ID,
	}).Error)

	w := performRequest(r, http.MethodGet, "/mechanic/rankings", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var rankings []struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		TicketCount int    `json:"ticket_count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rankings))
	assert.Len(t, rankings, 2)
	assert.Equal(t, mechanic.ID, rankings[0].ID)
	assert.Equal(t, 1, rankings[0].TicketCount)
	assert.Equal(t, idle.ID, rankings[1].ID)
	assert.Equal(t, 0, rankings[1].TicketCount)
}
