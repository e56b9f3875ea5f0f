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

type namePayload struct {
	Name string `json:"name" binding:"required,max=100"`
}

func AddSkill(c *gin.Context) {
	var p namePayload
	if !bindJSON(c, &p) {
		return
	}
	skill := models.Skill{Name: strings.TrimSpace(p.Name)}
	if err := database.DB.Create(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, conflict("skill with this name already exists."))
			return
		}
		respondError(c, internalError("create skill", err))
		return
	}
	respondData(c, http.StatusCreated, "Skill added successfully", skill)
}

func GetSkills(c *gin.Context) {
	skills := []models.Skill{}
	if err := database.DB.Order("name asc").Find(&skills).Error; err != nil {
		respondError(c, internalError("list skills", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func AddVisa(c *gin.Context) {
	var p namePayload
	if !bindJSON(c, &p) {
		return
	}
	visa := models.Visa{Name: strings.TrimSpace(p.Name)}
	if err := database.DB.Create(&visa).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, conflict("visa with this name already exists."))
			return
		}
		respondError(c, internalError("create visa", err))
		return
	}
	respondData(c, http.StatusCreated, "Visa added successfully", visa)
}

func GetVisas(c *gin.Context) {
	visas := []models.Visa{}
	if err := database.DB.Order("name asc").Find(&visas).Error; err != nil {
		respondError(c, internalError("list visas", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"visas": visas})
}
