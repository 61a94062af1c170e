package utils

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/lam3a/rush-backend/models"
)

// ServiceBasePrice returns the catalog price a service displays for a car
// category.
func ServiceBasePrice(svc *models.Service, category models.CarCategory) float64 {
	switch category {
	case models.CategorySUV:
		return svc.BasePriceSUV
	case models.CategoryLuxury:
		return svc.BasePriceLuxury
	default:
		return svc.BasePriceStandard
	}
}

// AddOnsTotal sums the current prices of the selected add-ons.
func AddOnsTotal(addOns []models.AddOn) float64 {
	var total float64
	for _, a := range addOns {
		total += a.Price
	}
	return total
}

// Discount computes the deduction an offer grants on a given amount.
// Percentage discounts round to the nearest pound.
func Discount(amount float64, discountType string, value float64) float64 {
	if discountType == models.DiscountPercentage {
		return math.Round(amount * value / 100)
	}
	return value
}

// OrderTotal computes the amount frozen into a new order:
// base*multiplier + addOns - discount. Never recomputed after creation.
func OrderTotal(basePrice, multiplier, addOnsTotal, discount float64) float64 {
	return basePrice*multiplier + addOnsTotal - discount
}

// GenerateOrderID builds a short public order identifier, e.g.
// LAM-M3K2V1-X7Q.
func GenerateOrderID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("LAM-%s-%s", ts, suffix)
}

// FormatPrice renders an amount in Egyptian pounds without decimals.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("%.0f EGP", math.Round(amount))
}
