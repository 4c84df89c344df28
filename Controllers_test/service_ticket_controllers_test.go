package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardiansyahdev/mechanic-shop/models"
)

func TestCreateTicketRequiresMechanicRole(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	seedMechanic(t, db, "mike@example.com", "mechpass")

	payload := map[string]interface{}{
		"title":       "Brake Job",
		"vin":         "1HGCM82633A654321",
		"description": "Replace front pads",
		"customer_id": customer.ID,
	}

	// Customer tokens carry no role, so the guard refuses them.
	custToken := loginCustomer(t, r, "jane@example.com", "custpass")
	w := performRequest(r, http.MethodPost, "/service_ticket/", payload, custToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(r, http.MethodPost, "/service_ticket/", payload, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mechToken := loginMechanic(t, r, "mike@example.com", "mechpass")
	w = performRequest(r, http.MethodPost, "/service_ticket/", payload, mechToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	ticket := body["ticket"].(map[string]interface{})
	assert.Equal(t, "Brake Job", ticket["title"])
	assert.Equal(t, string(models.StatusPending), ticket["status"])
}

func TestCreateTicketWithInitialLinks(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	mechanic := seedMechanic(t, db, "mike@example.com", "mechpass")
	item := seedInventory(t, db)
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	w := performRequest(r, http.MethodPost, "/service_ticket/", map[string]interface{}{
		"title":        "Full Service",
		"vin":          "1HGCM82633A777777",
		"description":  "Annual service",
		"status":       "in_progress",
		"cost":         250.0,
		"service_date": "2026-09-15",
		"customer_id":  customer.ID,
		"mechanic_ids": []uint{mechanic.ID},
		"inventory_items": []map[string]interface{}{
			{"inventory_id": item.ID, "quantity": 4},
		},
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	var assignCount, partCount int64
	db.Model(&models.ServiceAssignment{}).Count(&assignCount)
	db.Model(&models.InventoryAssignment{}).Count(&partCount)
	assert.Equal(t, int64(1), assignCount)
	assert.Equal(t, int64(1), partCount)
}

func TestCreateTicketInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	seedMechanic(t, db, "mike@example.com", "mechpass")
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	w := performRequest(r, http.MethodPost, "/service_ticket/", map[string]interface{}{
		"title":       "Brake Job",
		"vin":         "1HGCM82633A654321",
		"description": "Replace front pads",
		"status":      "DONE",
		"customer_id": customer.ID,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The rejection names every valid label.
	msg := decodeBody(t, w)["error"].(string)
	for _, status := range models.ValidTicketStatuses {
		assert.Contains(t, msg, string(status))
	}
}

func TestGetTickets(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	seedMechanic(t, db, "mike@example.com", "mechpass")
	ticket := seedTicket(t, db, customer.ID)
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	w := performRequest(r, http.MethodGet, "/service_ticket/", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "service_tickets")

	w = performRequest(r, http.MethodGet, fmt.Sprintf("/service_ticket/%d", ticket.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "ticket")

	w = performRequest(r, http.MethodGet, "/service_ticket/9999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTicketBulkEdit(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	mechanicA := seedMechanic(t, db, "alice@example.com", "mechpass")
	mechanicB := seedMechanic(t, db, "bob@example.com", "mechpass")
	item := seedInventory(t, db)
	ticket := seedTicket(t, db, customer.ID)
	assert.NoError(t, db.Create(&models.ServiceAssignment{
		ServiceTicketID: ticket.ID, MechanicID: mechanicA.ID,
	}).Error)
	token := loginMechanic(t, r, "alice@example.com", "mechpass")

	w := performRequest(r, http.MethodPut, fmt.Sprintf("/service_ticket/%d", ticket.ID), map[string]interface{}{
		"add_mechanics":    []uint{mechanicB.ID},
		"remove_mechanics": []uint{mechanicA.ID},
		"add_inventory": []map[string]interface{}{
			{"inventory_id": item.ID, "quantity": 2},
		},
		"status": "completed",
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body, "message")
	updated := body["ticket"].(map[string]interface{})
	assert.Equal(t, string(models.StatusCompleted), updated["status"])

	var assignments []models.ServiceAssignment
	db.Find(&assignments)
	assert.Len(t, assignments, 1)
	assert.Equal(t, mechanicB.ID, assignments[0].MechanicID)
}

func TestUpdateTicketAtomicOnBadReference(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	mechanic := seedMechanic(t, db, "mike@example.com", "mechpass")
	ticket := seedTicket(t, db, customer.ID)
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	w := performRequest(r, http.MethodPut, fmt.Sprintf("/service_ticket/%d", ticket.ID), map[string]interface{}{
		"add_mechanics": []uint{mechanic.ID},
		"add_inventory": []map[string]interface{}{
			{"inventory_id": 9999, "quantity": 1},
		},
		"status": "completed",
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// One bad reference rolls back every change in the edit.
	var assignCount int64
	db.Model(&models.ServiceAssignment{}).Count(&assignCount)
	assert.Equal(t, int64(0), assignCount)

	var unchanged models.ServiceTicket
	db.First(&unchanged, ticket.ID)
	assert.Equal(t, models.StatusPending, unchanged.Status)
}

func TestAddPartAggregatesQuantity(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	seedMechanic(t, db, "mike@example.com", "mechpass")
	item := seedInventory(t, db)
	ticket := seedTicket(t, db, customer.ID)
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	path := fmt.Sprintf("/service_ticket/%d/add-part", ticket.ID)
	payload := map[string]interface{}{"inventory_id": item.ID, "quantity": 2}

	w := performRequest(r, http.MethodPost, path, payload, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodPost, path, payload, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decodeBody(t, w)["quantity"])

	var rows []models.InventoryAssignment
	db.Find(&rows)
	assert.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Quantity)
}

func TestAddPartQuantityBounds(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	seedMechanic(t, db, "mike@example.com", "mechpass")
	item := seedInventory(t, db)
	ticket := seedTicket(t, db, customer.ID)
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	path := fmt.Sprintf("/service_ticket/%d/add-part", ticket.ID)

	// An explicit zero is not the same as an omitted quantity: zero and
	// negatives are rejected, omission means one unit.
	w := performRequest(r, http.MethodPost, path, map[string]interface{}{
		"inventory_id": item.ID, "quantity": 0,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(r, http.MethodPost, path, map[string]interface{}{
		"inventory_id": item.ID, "quantity": -3,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.InventoryAssignment{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = performRequest(r, http.MethodPost, path, map[string]interface{}{
		"inventory_id": item.ID,
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["quantity"])
}

func TestGetTicketMechanics(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	mechanic := seedMechanic(t, db, "mike@example.com", "mechpass")
	ticket := seedTicket(t, db, customer.ID)
	assert.NoError(t, db.Create(&models.ServiceAssignment{
		ServiceTicketID: ticket.ID, MechanicID: mechanic.ID,
	}).Error)
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	w := performRequest(r, http.MethodGet, fmt.Sprintf("/service_ticket/%d/mechanics", ticket.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mike@example.com")

	w = performRequest(r, http.MethodGet, "/service_ticket/9999/mechanics", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTicket(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "jane@example.com", "custpass")
	mechanic := seedMechanic(t, db, "mike@example.com", "mechpass")
	ticket := seedTicket(t, db, customer.ID)
	assert.NoError(t, db.Create(&models.ServiceAssignment{
		ServiceTicketID: ticket.ID, MechanicID: mechanic.ID,
	}).Error)
	token := loginMechanic(t, r, "mike@example.com", "mechpass")

	w := performRequest(r, http.MethodDelete, fmt.Sprintf("/service_ticket/%d", ticket.ID), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Assignment rows go with the ticket; the mechanic stays.
	var assignCount, mechCount int64
	db.Model(&models.ServiceAssignment{}).Count(&assignCount)
	db.Model(&models.Mechanic{}).Count(&mechCount)
	assert.Equal(t, int64(0), assignCount)
	assert.Equal(t, int64(1), mechCount)

	w = performRequest(r, http.MethodDelete, "/service_ticket/9999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
