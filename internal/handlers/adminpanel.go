package handlers

import (
	"errors"
	"net/http"
	"strings"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type staffPayload struct {
	Username string  `json:"username" binding:"required,max=150"`
	FullName string  `json:"full_name" binding:"max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
}

type idPayload struct {
	ID uint `json:"id"`
}

func AddMarketer(c *gin.Context) {
	var p staffPayload
	if !bindJSON(c, &p) {
		return
	}
	m := models.Marketer{
		Username: strings.TrimSpace(p.Username),
		FullName: strings.TrimSpace(p.FullName),
		Email:    trimmed(p.Email),
		Phone:    trimmed(p.Phone),
	}
	if err := database.DB.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, conflict("marketer with this username already exists."))
			return
		}
		respondError(c, internalError("create marketer", err))
		return
	}

	audit(c, "marketer", m.ID, "create", "Marketer added: "+m.Username)
	respondData(c, http.StatusCreated, "Marketer added successfully", m)
}

// GetMarketer returns one marketer when an id is sent, otherwise all of them.
func GetMarketer(c *gin.Context) {
	var p idPayload
	if c.Request.ContentLength != 0 && !bindJSON(c, &p) {
		return
	}

	if p.ID != 0 {
		var m models.Marketer
		if err := database.DB.First(&m, p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, notFound("Marketer"))
				return
			}
			respondError(c, internalError("load marketer", err))
			return
		}
		c.JSON(http.StatusOK, m)
		return
	}

	marketers, err := listMarketers()
	if err != nil {
		respondError(c, internalError("list marketers", err))
		return
	}
	c.JSON(http.StatusOK, marketers)
}

// ListMarketers backs the frontend's GET alias.
func ListMarketers(c *gin.Context) {
	marketers, err := listMarketers()
	if err != nil {
		respondError(c, internalError("list marketers", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"marketers": marketers})
}

func listMarketers() ([]models.Marketer, error) {
	marketers := []models.Marketer{}
	err := database.DB.Order("created_at desc, id desc").Find(&marketers).Error
	return marketers, err
}

func AddRecruiter(c *gin.Context) {
	var p staffPayload
	if !bindJSON(c, &p) {
		return
	}
	r := models.Recruiter{
		Username: strings.TrimSpace(p.Username),
		FullName: strings.TrimSpace(p.FullName),
		Email:    trimmed(p.Email),
		Phone:    trimmed(p.Phone),
	}
	if err := database.DB.Create(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, conflict("recruiter with this username already exists."))
			return
		}
		respondError(c, internalError("create recruiter", err))
		return
	}

	audit(c, "recruiter", r.ID, "create", "Recruiter added: "+r.Username)
	respondData(c, http.StatusCreated, "Recruiter added successfully", r)
}

func GetRecruiter(c *gin.Context) {
	var p idPayload
	if c.Request.ContentLength != 0 && !bindJSON(c, &p) {
		return
	}

	if p.ID != 0 {
		var r models.Recruiter
		if err := database.DB.First(&r, p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, notFound("Recruiter"))
				return
			}
			respondError(c, internalError("load recruiter", err))
			return
		}
		c.JSON(http.StatusOK, r)
		return
	}

	recruiters := []models.Recruiter{}
	if err := database.DB.Order("created_at desc, id desc").Find(&recruiters).Error; err != nil {
		respondError(c, internalError("list recruiters", err))
		return
	}
	c.JSON(http.StatusOK, recruiters)
}
