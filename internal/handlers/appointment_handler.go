package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/ApollonSMK/MEXperience-sub000/internal/domain/appointment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/schedule"
	"github.com/ApollonSMK/MEXperience-sub000/internal/httperr"
	"github.com/ApollonSMK/MEXperience-sub000/internal/middleware"
	appointmentuc "github.com/ApollonSMK/MEXperience-sub000/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo domain.Repository

	create       *appointmentuc.CreateAppointment
	cancel       *appointmentuc.CancelAppointment
	deleteBlock  *appointmentuc.DeleteAppointment
	reschedule   *appointmentuc.RescheduleAppointment
	listDay      *appointmentuc.ListDayAgenda
	listMonth    *appointmentuc.ListMonth
	availability *appointmentuc.GetAvailability
}

func NewAppointmentHandler(
	repo domain.Repository,
	create *appointmentuc.CreateAppointment,
	cancel *appointmentuc.CancelAppointment,
	deleteBlock *appointmentuc.DeleteAppointment,
	reschedule *appointmentuc.RescheduleAppointment,
	listDay *appointmentuc.ListDayAgenda,
	listMonth *appointmentuc.ListMonth,
	availability *appointmentuc.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		create:       create,
		cancel:       cancel,
		deleteBlock:  deleteBlock,
		reschedule:   reschedule,
		listDay:      listDay,
		listMonth:    listMonth,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ServiceID uint   `json:"service_id"`
	Kind      string `json:"kind"`

	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	DurationMin int    `json:"duration_min"`
	Notes       string `json:"notes"`
}

type MovePreviewRequest struct {
	Date                string `json:"date" binding:"required"`
	MinutesFromMidnight int    `json:"minutes_from_midnight"`
}

type MoveCommitRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointmentuc.CreateAppointmentInput{
		UserID:      userID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Kind:        req.Kind,
		Date:        req.Date,
		Time:        req.Time,
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_create_appointment", "Erreur à la création du rendez-vous.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// AGENDA DU JOUR
// ======================================================

// ListByDate rend les rendez-vous du jour avec leur géométrie : chaque
// entrée porte colonne, largeur et offsets prêts à rendre.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date obligatoire.")
		return
	}

	studio, err := h.repo.GetStudio(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "studio_not_found", "Centre non configuré.")
		return
	}

	date, err := parseDateInStudio(studio, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	pxPerMin := schedule.DefaultPixelsPerMinute
	if raw := c.Query("px_per_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			pxPerMin = v
		}
	}

	items, err := h.listDay.Execute(c.Request.Context(), date, pxPerMin)
	if err != nil {
		writeBusiness(c, err, "failed_to_list_agenda", "Erreur à la lecture de l'agenda.")
		return
	}

	c.JSON(http.StatusOK, items)
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Année et mois obligatoires.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Année invalide.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mois invalide.")
		return
	}

	items, err := h.listMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		writeBusiness(c, err, "failed_to_list_month", "Erreur à la lecture du mois.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		writeBusiness(c, err, "failed_to_cancel_appointment", "Erreur à l'annulation.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Delete efface un block du calendrier ; les soins passent par Cancel.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	if err := h.deleteBlock.Execute(c.Request.Context(), userID, uint(id)); err != nil {
		writeBusiness(c, err, "failed_to_delete_block", "Erreur à la suppression.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// DÉPLACEMENT EN DEUX TEMPS
// ======================================================

// MovePreview accroche la position déposée à la grille de 5 minutes et
// valide le créneau, sans rien écrire.
func (h *AppointmentHandler) MovePreview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	var req MovePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	staged, err := h.reschedule.Propose(c.Request.Context(), appointmentuc.ProposeMoveInput{
		AppointmentID:       uint(id),
		Date:                req.Date,
		MinutesFromMidnight: req.MinutesFromMidnight,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_preview_move", "Erreur à la validation du déplacement.")
		return
	}

	c.JSON(http.StatusOK, staged)
}

// MoveCommit écrit le déplacement confirmé, après revalidation.
func (h *AppointmentHandler) MoveCommit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	var req MoveCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	ap, err := h.reschedule.Commit(c.Request.Context(), appointmentuc.CommitMoveInput{
		UserID:        userID,
		AppointmentID: uint(id),
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_move_appointment", "Erreur au déplacement.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Soin obligatoire.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date obligatoire.")
		return
	}

	studio, err := h.repo.GetStudio(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "studio_not_found", "Centre non configuré.")
		return
	}

	date, err := parseDateInStudio(studio, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		writeBusiness(c, err, "failed_to_get_availability", "Erreur à la recherche de créneaux.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
