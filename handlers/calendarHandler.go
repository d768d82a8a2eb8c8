package handlers

import (
	"ClinicFlow/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	service *services.CalendarService
}

func NewCalendarHandler(service *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// GetMonthGrid renders the calendar grid for a year/month pair.
func (h *CalendarHandler) GetMonthGrid(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid month"})
		return
	}

	grid, err := h.service.MonthGrid(c, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"year": year, "month": month, "cells": grid})
}
