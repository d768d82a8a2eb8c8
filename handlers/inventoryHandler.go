package handlers

import (
	"ClinicFlow/models"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *services.InventoryService
}

func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, item)
}

func (h *InventoryHandler) GetInventoryItemByID(c *gin.Context) {
	id, ok := parseID(c, "item_id")
	if !ok {
		return
	}
	item, err := h.service.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, item)
}

// GetAllInventoryItems lists the catalog; ?category= filters by category
// substring and ?low_stock=true keeps only items at or below their reorder
// threshold.
func (h *InventoryHandler) GetAllInventoryItems(c *gin.Context) {
	lowStock := c.Query("low_stock") == "true"
	items, err := h.service.GetAll(c, c.Query("category"), lowStock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, items)
}

// GetLowStockItems is the reporting view of items needing reorder.
func (h *InventoryHandler) GetLowStockItems(c *gin.Context) {
	items, err := h.service.LowStock(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, items)
}

func (h *InventoryHandler) UpdateInventoryItem(c *gin.Context) {
	id, ok := parseID(c, "item_id")
	if !ok {
		return
	}
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	item.ID = id
	if err := h.service.Update(c, &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, item)
}

func (h *InventoryHandler) DeleteInventoryItem(c *gin.Context) {
	id, ok := parseID(c, "item_id")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Inventory item deleted"})
}
