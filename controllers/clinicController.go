package controllers

import (
	"ClinicFlow/handlers"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers every clinic resource on the router.
func SetupClinicRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, doctorHandler *handlers.DoctorHandler, appointmentHandler *handlers.AppointmentHandler, calendarHandler *handlers.CalendarHandler, inventoryHandler *handlers.InventoryHandler, billingHandler *handlers.BillingHandler) {
	router.POST("/doctors", doctorHandler.CreateDoctor)
	router.GET("/doctors/:id", doctorHandler.GetDoctorByID)
	router.PUT("/doctors/:id", doctorHandler.UpdateDoctor)
	router.DELETE("/doctors/:id", doctorHandler.DeleteDoctor)
	router.GET("/doctors", doctorHandler.GetAllDoctors)

	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:patient_id", patientHandler.DeletePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.POST("/appointments", appointmentHandler.CreateAppointment)
	router.GET("/appointments", appointmentHandler.GetAllAppointments)
	router.GET("/appointments/upcoming", appointmentHandler.ListUpcomingAppointments)
	router.GET("/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
	router.PUT("/appointments/:appointment_id", appointmentHandler.UpdateAppointment)
	router.POST("/appointments/:appointment_id/cancel", appointmentHandler.CancelAppointment)
	router.DELETE("/appointments/:appointment_id", appointmentHandler.DeleteAppointment)

	router.GET("/calendar/:year/:month", calendarHandler.GetMonthGrid)

	router.POST("/inventory", inventoryHandler.CreateInventoryItem)
	router.GET("/inventory", inventoryHandler.GetAllInventoryItems)
	router.GET("/inventory/low-stock", inventoryHandler.GetLowStockItems)
	router.GET("/inventory/:item_id", inventoryHandler.GetInventoryItemByID)
	router.PUT("/inventory/:item_id", inventoryHandler.UpdateInventoryItem)
	router.DELETE("/inventory/:item_id", inventoryHandler.DeleteInventoryItem)

	router.POST("/bills", billingHandler.CreateBill)
	router.GET("/bills", billingHandler.GetAllBills)
	router.GET("/bills/:bill_id", billingHandler.GetBillByID)
	router.PUT("/bills/:bill_id", billingHandler.UpdateBill)
	router.DELETE("/bills/:bill_id", billingHandler.DeleteBill)
}
