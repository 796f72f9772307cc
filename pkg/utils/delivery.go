package utils

import (
	"math"
)

const (
	// FreeDeliveryRadiusKm is the radius around the depot within which
	// delivery is free.
	FreeDeliveryRadiusKm = 30.0
	// DeliveryRatePerKm is charged per kilometer beyond the free radius,
	// in EUR.
	DeliveryRatePerKm = 0.35
)

// DeliveryQuote contains the calculated delivery surcharge and breakdown.
type DeliveryQuote struct {
	DistanceKm   float64 `json:"distanceKm"`
	DeliveryCost float64 `json:"deliveryCost"`
	// Estimated is true when the destination could not be located and the
	// cost defaulted to zero rather than being computed.
	Estimated bool `json:"estimated"`
}

// CalculateDeliveryCost computes the surcharge for delivering from the
// depot to the destination. The first FreeDeliveryRadiusKm kilometers are
// free; every kilometer beyond that is billed at DeliveryRatePerKm.
func CalculateDeliveryCost(originLat, originLng, destLat, destLng float64) DeliveryQuote {
	distance := HaversineDistance(originLat, originLng, destLat, destLng)

	return DeliveryQuote{
		DistanceKm:   Round2(distance),
		DeliveryCost: DeliveryCostForDistance(distance),
	}
}

// DeliveryCostForDistance applies the surcharge rate to a known distance,
// rounded to 2 decimal places.
func DeliveryCostForDistance(distanceKm float64) float64 {
	var cost float64
	if distanceKm > FreeDeliveryRadiusKm {
		cost = (distanceKm - FreeDeliveryRadiusKm) * DeliveryRatePerKm
	}
	return Round2(cost)
}

// FallbackDeliveryQuote is returned when the destination has no usable
// coordinates. The zero cost is an estimate, not a computed fee.
func FallbackDeliveryQuote() DeliveryQuote {
	return DeliveryQuote{Estimated: true}
}

// Round2 rounds to 2 decimal places
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
