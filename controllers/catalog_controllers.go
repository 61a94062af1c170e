package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

// CatalogController serves the storefront catalog (services, add-ons,
// packages, offers) and the admin CRUD behind it.
type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// GetServices lists active services in display order. Public.
func (cc *CatalogController) GetServices(c *gin.Context) {
	var services []models.Service
	if err := cc.DB.Where("is_active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&services).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Services", services)
}

func (cc *CatalogController) CreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	svc.ID = 0
	svc.IsActive = true
	svc.CreatedAt = time.Now()

	if err := cc.DB.Create(&svc).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Service created", svc)
}

// UpdateService edits catalog prices. Existing orders are unaffected; their
// totals were frozen at booking time.
func (cc *CatalogController) UpdateService(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("service_id"))

	var svc models.Service
	if err := cc.DB.First(&svc, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	delete(patch, "id")
	delete(patch, "created_at")

	if err := cc.DB.Model(&svc).Updates(patch).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Service updated", svc)
}

func (cc *CatalogController) DeleteService(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("service_id"))

	res := cc.DB.Model(&models.Service{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Service removed", gin.H{"service_id": id})
}

// GetAddOns lists active add-ons. Public.
func (cc *CatalogController) GetAddOns(c *gin.Context) {
	var addOns []models.AddOn
	if err := cc.DB.Where("is_active = ?", true).Find(&addOns).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Add-ons", addOns)
}

func (cc *CatalogController) CreateAddOn(c *gin.Context) {
	var addOn models.AddOn
	if err := c.ShouldBindJSON(&addOn); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	addOn.ID = 0
	addOn.IsActive = true
	addOn.CreatedAt = time.Now()

	if err := cc.DB.Create(&addOn).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Add-on created", addOn)
}

func (cc *CatalogController) DeleteAddOn(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("add_on_id"))

	res := cc.DB.Model(&models.AddOn{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Add-on removed", gin.H{"add_on_id": id})
}

// GetPackages lists active subscription bundles. Public.
func (cc *CatalogController) GetPackages(c *gin.Context) {
	var packages []models.Package
	if err := cc.DB.Where("is_active = ?", true).Find(&packages).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Packages", packages)
}

func (cc *CatalogController) CreatePackage(c *gin.Context) {
	var pkg models.Package
	if err := c.ShouldBindJSON(&pkg); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	pkg.ID = 0
	pkg.IsActive = true
	pkg.CreatedAt = time.Now()

	if err := cc.DB.Create(&pkg).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Package created", pkg)
}

// GetOffers lists currently usable offers. Public.
func (cc *CatalogController) GetOffers(c *gin.Context) {
	var offers []models.Offer
	if err := cc.DB.Where("is_active = ?", true).Find(&offers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	visible := offers[:0]
	for i := range offers {
		o := offers[i]
		if o.ValidFrom != nil && now.Before(*o.ValidFrom) {
			continue
		}
		if o.ValidUntil != nil && now.After(*o.ValidUntil) {
			continue
		}
		visible = append(visible, o)
	}
	utils.RespondJSON(c, http.StatusOK, "Offers", visible)
}

func (cc *CatalogController) CreateOffer(c *gin.Context) {
	var offer models.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	offer.ID = 0
	offer.CurrentUses = 0
	offer.IsActive = true
	offer.CreatedAt = time.Now()

	if err := cc.DB.Create(&offer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Offer created", offer)
}

func (cc *CatalogController) DeleteOffer(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("offer_id"))

	res := cc.DB.Model(&models.Offer{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Offer removed", gin.H{"offer_id": id})
}
