package handlers

import (
	"ClinicFlow/models"
	"ClinicFlow/repositories"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

// CreateBill validates the candidate bill and reserves stock for its
// catalog-bound items before persisting. A validation or stock failure
// leaves inventory untouched.
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var bill models.Bill
	if err := c.ShouldBindJSON(&bill); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &bill); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, bill)
}

func (h *BillingHandler) GetBillByID(c *gin.Context) {
	id, ok := parseID(c, "bill_id")
	if !ok {
		return
	}
	bill, err := h.service.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, bill)
}

func (h *BillingHandler) GetAllBills(c *gin.Context) {
	filter := repositories.BillFilter{
		PatientID:     c.Query("patient_id"),
		PaymentStatus: c.Query("payment_status"),
		StartDate:     c.Query("start_date"),
		EndDate:       c.Query("end_date"),
	}
	bills, err := h.service.GetAll(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, bills)
}

// UpdateBill accepts payment status and notes only; item edits after
// creation are not supported.
func (h *BillingHandler) UpdateBill(c *gin.Context) {
	id, ok := parseID(c, "bill_id")
	if !ok {
		return
	}
	var update services.BillUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	bill, err := h.service.Update(c, id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, bill)
}

// DeleteBill removes the bill and restores the stock it reserved.
func (h *BillingHandler) DeleteBill(c *gin.Context) {
	id, ok := parseID(c, "bill_id")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Bill deleted"})
}
